package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/noticegen/pkg/cache"
	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/httputil"
	"github.com/matzehuels/noticegen/pkg/integrations/github"
	"github.com/matzehuels/noticegen/pkg/integrations/nuget"
	"github.com/matzehuels/noticegen/pkg/integrations/web"
	"github.com/matzehuels/noticegen/pkg/license"
	"github.com/matzehuels/noticegen/pkg/license/sources"
	"github.com/matzehuels/noticegen/pkg/notices"
	"github.com/matzehuels/noticegen/pkg/project"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	flags      config // values as parsed; only explicitly set flags are applied
	configPath string
	check      bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{flags: defaultConfig()}

	cmd := &cobra.Command{
		Use:   "generate [scan-dir]",
		Short: "Generate the third-party notices file for a .NET project",
		Long: `Generate the third-party notices file for the .NET project in scan-dir
(default: the current directory).

The project must have been restored ("dotnet restore") so that
obj/project.assets.json lists its packages. Each package's license is looked
up in this order: a license file inside the package, the source repository at
the packaged commit, the declared license URL, the project URL.

Settings are read from flags, then the environment, then noticegen.toml in
scan-dir (or --config), then defaults. GITHUB_TOKEN raises the GitHub API
rate limit.

Examples:
  noticegen generate
  noticegen generate ./src/App -o THIRD-PARTY-NOTICES.txt
  noticegen generate --framework net8.0 --use-unsafe-resolvers
  noticegen generate --check`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScanDir,
		RunE: func(cmd *cobra.Command, args []string) error {
			scanDir := "."
			if len(args) == 1 {
				scanDir = args[0]
			}
			return c.runGenerate(cmd, scanDir, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.flags.Output, "output", "o", opts.flags.Output, "output file")
	f.StringVar(&opts.flags.Framework, "framework", "", "target framework to read (default: all restored targets)")
	f.BoolVar(&opts.flags.UseUnsafeResolvers, "use-unsafe-resolvers", false, "enable license sources that can yield misleading licenses")
	f.DurationVar(&opts.flags.Timeout, "timeout", opts.flags.Timeout, "timeout per HTTP request")
	f.IntVar(&opts.flags.MaxRedirects, "max-redirects", opts.flags.MaxRedirects, "redirects followed per URL")
	f.IntVar(&opts.flags.Attempts, "attempts", opts.flags.Attempts, "attempts per HTTP request (1 disables retry)")
	f.StringVar(&opts.flags.GitHubToken, "github-token", "", "GitHub token (default: $GITHUB_TOKEN)")
	f.StringVar(&opts.flags.GitHubOAuth, "github-oauth", "", "GitHub OAuth app credentials as ClientId:ClientSecret")
	f.StringVar(&opts.configPath, "config", "", "config file (default: noticegen.toml in scan-dir)")
	f.BoolVar(&opts.check, "check", false, "verify the output file is up to date instead of writing it")
	_ = cmd.RegisterFlagCompletionFunc("framework", completeFrameworks)

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, scanDir string, opts generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	scanDir, err := filepath.Abs(scanDir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", scanDir)
	}
	cfg, unknown, err := loadConfig(cmd.Flags(), opts.flags, opts.configPath, scanDir)
	if err != nil {
		return err
	}
	for _, key := range unknown {
		logger.Warn("unknown config key", "key", key)
	}

	logger.Info("scanning directory", "dir", scanDir)
	projectFile, err := project.FindProjectFile(scanDir)
	if err != nil {
		return err
	}
	logger.Info("using project", "file", filepath.Base(projectFile))

	libs, err := project.Load(scanDir, project.Options{Framework: cfg.Framework, Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("found libraries", "count", len(libs))

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	stats := &runStats{}
	defer stats.install()()

	prog := newProgress(logger)
	var summary notices.Summary
	if opts.check {
		summary, err = c.check(ctx, gen, libs, cfg.Output)
	} else {
		summary, err = c.write(ctx, gen, libs, cfg.Output)
	}
	if err != nil {
		return err
	}
	prog.done(summary)

	printSummary(summary)
	if c.verbose {
		printRunStats(stats)
	}
	return nil
}

// newGenerator wires the resolution pipeline from cfg.
func newGenerator(cfg config, logger *log.Logger) (*notices.Generator, error) {
	httpClient := httputil.NewClient(cfg.Timeout)

	gh := github.NewClient(github.Options{
		Token:      cfg.GitHubToken,
		OAuth:      cfg.GitHubOAuth,
		HTTPClient: httpClient,
		Attempts:   cfg.Attempts,
		Logger:     logger,
	})
	registry := nuget.NewClient(nuget.Options{HTTPClient: httpClient, Attempts: cfg.Attempts, Logger: logger})
	webOpts := web.Options{HTTPClient: httpClient, Attempts: cfg.Attempts, Logger: logger}
	fetcher := web.NewFetcher(webOpts)

	reg := license.NewRegistry()
	sources.RegisterDefaults(reg, sources.Clients{GitHub: gh, Fetcher: fetcher, Registry: registry})

	resolver, err := license.New(license.Options{
		Registry:     reg,
		Fetcher:      fetcher,
		Prober:       web.NewProber(webOpts),
		Cache:        cache.NewMemoryCache(),
		AllowUnsafe:  cfg.UseUnsafeResolvers,
		MaxRedirects: cfg.MaxRedirects,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	return notices.NewGenerator(notices.Options{Resolver: resolver, Logger: logger})
}

func (c *CLI) write(ctx context.Context, gen *notices.Generator, libs []project.Library, output string) (notices.Summary, error) {
	f, err := os.Create(output)
	if err != nil {
		return notices.Summary{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", output)
	}
	defer f.Close()

	w, err := notices.NewWriter(f)
	if err != nil {
		return notices.Summary{}, err
	}
	summary, err := gen.Generate(ctx, libs, w)
	if err != nil {
		return summary, err
	}
	if err := f.Close(); err != nil {
		return summary, errors.Wrap(errors.ErrCodeInternal, err, "close %s", output)
	}
	printSuccess("Wrote %s", output)
	return summary, nil
}

func (c *CLI) check(ctx context.Context, gen *notices.Generator, libs []project.Library, output string) (notices.Summary, error) {
	var buf bytes.Buffer
	w, err := notices.NewWriter(&buf)
	if err != nil {
		return notices.Summary{}, err
	}
	summary, err := gen.Generate(ctx, libs, w)
	if err != nil {
		return summary, err
	}

	diff, same, err := compareOutput(output, buf.Bytes())
	if err != nil {
		return summary, err
	}
	if !same {
		fmt.Print(diff)
		printError("%s is out of date", output)
		return summary, errors.New(errors.ErrCodeOutputMismatch, "%s is out of date; run noticegen generate", output)
	}
	printSuccess("%s is up to date", output)
	return summary, nil
}

package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/httputil"
	"github.com/matzehuels/noticegen/pkg/license"
)

const (
	// defaultConfigFile is looked up in the scan directory when --config is not given.
	defaultConfigFile = "noticegen.toml"

	// defaultOutput is the notices file name.
	defaultOutput = "third-party-notices.txt"
)

// dotEnvFile is loaded into the environment before it is read. A missing
// file is ignored.
var dotEnvFile = ".env"


// Environment variables read by the generate command.
const (
	envGitHubToken = "GITHUB_TOKEN"
	envGitHubOAuth = "GITHUB_OAUTH"
	envUnsafe      = "NOTICEGEN_UNSAFE_RESOLVERS"
	envTimeout     = "NOTICEGEN_TIMEOUT"
)

// config holds the settings of one generate run.
// Precedence: flags > environment > config file > defaults.
type config struct {
	Output             string        `toml:"output"`
	Framework          string        `toml:"framework"`
	UseUnsafeResolvers bool          `toml:"use_unsafe_resolvers"`
	Timeout            time.Duration `toml:"timeout"`
	MaxRedirects       int           `toml:"max_redirects"`
	Attempts           int           `toml:"attempts"`
	GitHubToken        string        `toml:"github_token"`
	GitHubOAuth        string        `toml:"github_oauth"`
}

func defaultConfig() config {
	return config{
		Output:       defaultOutput,
		Timeout:      httputil.DefaultTimeout,
		MaxRedirects: license.DefaultMaxRedirects,
		Attempts:     1,
	}
}

// readConfigFile decodes a TOML config file over cfg. Unknown keys are
// returned so the caller can warn about them.
func readConfigFile(path string, cfg *config) ([]string, error) {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// configPath returns the config file to read: the explicit path, or the
// default file in scanDir if it exists. Empty means no file.
func configPath(explicit, scanDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", explicit)
		}
		return explicit, nil
	}
	path := filepath.Join(scanDir, defaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// applyEnv overlays environment variables on cfg. A .env file in the
// working directory is loaded first; variables already set win.
func applyEnv(cfg *config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", dotEnvFile)
	}

	if v := strings.TrimSpace(os.Getenv(envGitHubToken)); v != "" {
		cfg.GitHubToken = v
	}
	if v := strings.TrimSpace(os.Getenv(envGitHubOAuth)); v != "" {
		cfg.GitHubOAuth = v
	}
	if v := strings.TrimSpace(os.Getenv(envUnsafe)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", envUnsafe)
		}
		cfg.UseUnsafeResolvers = b
	}
	if v := strings.TrimSpace(os.Getenv(envTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", envTimeout)
		}
		cfg.Timeout = d
	}
	return nil
}

// applyFlags copies every flag the user set explicitly from flagCfg to cfg.
func applyFlags(flags *pflag.FlagSet, flagCfg config, cfg *config) {
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("output", func() { cfg.Output = flagCfg.Output })
	set("framework", func() { cfg.Framework = flagCfg.Framework })
	set("use-unsafe-resolvers", func() { cfg.UseUnsafeResolvers = flagCfg.UseUnsafeResolvers })
	set("timeout", func() { cfg.Timeout = flagCfg.Timeout })
	set("max-redirects", func() { cfg.MaxRedirects = flagCfg.MaxRedirects })
	set("attempts", func() { cfg.Attempts = flagCfg.Attempts })
	set("github-token", func() { cfg.GitHubToken = flagCfg.GitHubToken })
	set("github-oauth", func() { cfg.GitHubOAuth = flagCfg.GitHubOAuth })
}

func (c config) validate() error {
	switch {
	case c.Output == "":
		return errors.New(errors.ErrCodeInvalidConfig, "output file name is empty")
	case c.Timeout <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive, got %s", c.Timeout)
	case c.MaxRedirects < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max redirects must not be negative, got %d", c.MaxRedirects)
	case c.Attempts < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "attempts must be at least 1, got %d", c.Attempts)
	case c.GitHubOAuth != "" && !strings.Contains(c.GitHubOAuth, ":"):
		return errors.New(errors.ErrCodeInvalidConfig, "github oauth must be ClientId:ClientSecret")
	}
	return nil
}

// loadConfig builds the effective configuration for a run in scanDir.
func loadConfig(flags *pflag.FlagSet, flagCfg config, explicitPath, scanDir string) (config, []string, error) {
	cfg := defaultConfig()

	path, err := configPath(explicitPath, scanDir)
	if err != nil {
		return cfg, nil, err
	}
	var unknown []string
	if path != "" {
		if unknown, err = readConfigFile(path, &cfg); err != nil {
			return cfg, nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, nil, err
	}
	applyFlags(flags, flagCfg, &cfg)
	return cfg, unknown, cfg.validate()
}

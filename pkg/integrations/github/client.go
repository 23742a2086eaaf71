package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/buildinfo"
	noticeerrors "github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/integrations"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Options configures a [Client].
type Options struct {
	BaseURL    string       // API root; defaults to DefaultBaseURL
	Token      string       // Bearer token (personal access token)
	OAuth      string       // "client_id:client_secret" for basic auth
	HTTPClient *http.Client // Defaults to httputil.NewClient
	Attempts   int          // Attempts per request; 0 or 1 disables retry
	Logger     *log.Logger  // Defaults to log.Default()
}

// Client provides access to the GitHub license endpoints.
// It handles HTTP requests with automatic retries and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a GitHub API client.
func NewClient(opts Options) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if auth := authorization(opts.Token, opts.OAuth); auth != "" {
		headers["Authorization"] = auth
	}

	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		Client:  integrations.NewClient(opts.HTTPClient, headers, opts.Attempts),
		baseURL: baseURL,
		logger:  logger,
	}
}

func authorization(token, oauth string) string {
	switch {
	case token != "":
		return "Bearer " + token
	case oauth != "":
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(oauth))
	default:
		return ""
	}
}

// LicenseByID returns the canonical text of the license with the given
// identifier (e.g. "mit", "Apache-2.0").
func (c *Client) LicenseByID(ctx context.Context, id string) (string, bool) {
	if err := noticeerrors.ValidateLicenseID(id); err != nil {
		c.logger.Error("invalid license id", "license", id, "err", err)
		return "", false
	}

	var data licenseResponse
	endpoint := fmt.Sprintf("%s/licenses/%s", c.baseURL, url.PathEscape(id))
	if err := c.Get(ctx, endpoint, &data); err != nil {
		c.logFailure("get github license", err, "license", id)
		return "", false
	}
	return data.Body, data.Body != ""
}

// RepositoryLicense returns the license file GitHub detects for the
// repository at repoPath ("/owner/repo"), optionally at a specific commit.
func (c *Client) RepositoryLicense(ctx context.Context, repoPath, commit string) (string, bool) {
	repoPath = strings.TrimRight(repoPath, "/")
	owner, repo, err := ParseRepoPath(repoPath)
	if err != nil {
		c.logger.Error("invalid repository path", "repository", repoPath, "err", err)
		return "", false
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/license", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	if commit != "" {
		endpoint += "?ref=" + url.QueryEscape(commit)
	}

	var data repoLicenseResponse
	if err := c.Get(ctx, endpoint, &data); err != nil {
		c.logFailure("get github repository license", err, "repository", repoPath, "commit", commit)
		return "", false
	}

	text, err := data.decode()
	if err != nil {
		c.logger.Error("decode github repository license", "repository", repoPath, "err", err)
		return "", false
	}
	return text, text != ""
}

func (c *Client) logFailure(msg string, err error, kv ...any) {
	kv = append(kv, "err", err)
	if errors.Is(err, integrations.ErrNotFound) || errors.Is(err, context.Canceled) {
		c.logger.Debug(msg, kv...)
		return
	}
	c.logger.Error(msg, kv...)
}

type licenseResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Body string `json:"body"`
}

type repoLicenseResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// decode returns the license text, base64-decoding it when the API says so.
// GitHub wraps base64 content at 60 columns.
func (r repoLicenseResponse) decode() (string, error) {
	if r.Encoding != "base64" {
		return r.Content, nil
	}
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(r.Content)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return string(data), nil
}

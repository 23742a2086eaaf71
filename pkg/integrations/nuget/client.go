// Package nuget provides an HTTP client for the NuGet license registry
// (https://licenses.nuget.org), which serves one page per SPDX identifier
// or license expression.
package nuget

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/buildinfo"
	noticeerrors "github.com/matzehuels/noticegen/pkg/errors"
	"github.com/matzehuels/noticegen/pkg/integrations"
)

// DefaultBaseURL is the public license registry.
const DefaultBaseURL = "https://licenses.nuget.org"

// Host is the registry host name as it appears in package license URLs.
const Host = "licenses.nuget.org"

// Options configures a [Client].
type Options struct {
	BaseURL    string       // Registry root; defaults to DefaultBaseURL
	HTTPClient *http.Client // Defaults to httputil.NewClient
	Attempts   int          // Attempts per request; 0 or 1 disables retry
	Logger     *log.Logger  // Defaults to log.Default()
}

// Client fetches license texts from the registry.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a registry client.
func NewClient(opts Options) *Client {
	headers := map[string]string{
		"Accept":     "text/plain",
		"User-Agent": buildinfo.UserAgent(),
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

// LicenseText returns the raw text the registry serves for id. Responses
// that are not text/plain (the registry's HTML pages) count as not found.
func (c *Client) LicenseText(ctx context.Context, id string) (string, bool) {
	if err := noticeerrors.ValidateLicenseID(id); err != nil {
		c.logger.Error("invalid license id", "license", id, "err", err)
		return "", false
	}

	endpoint := c.baseURL + "/" + url.PathEscape(id)
	resp, err := c.Fetch(ctx, endpoint)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.logger.Error("get nuget license", "license", id, "err", err)
		}
		return "", false
	}
	if !resp.OK() {
		c.logger.Debug("nuget license not available", "license", id, "status", resp.StatusCode)
		return "", false
	}
	if resp.MediaType != "text/plain" {
		c.logger.Debug("nuget license is not plain text", "license", id, "type", resp.MediaType)
		return "", false
	}
	return resp.Body, resp.Body != ""
}

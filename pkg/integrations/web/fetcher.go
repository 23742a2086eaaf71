package web

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/buildinfo"
	"github.com/matzehuels/noticegen/pkg/httputil"
	"github.com/matzehuels/noticegen/pkg/integrations"
)

const plainTextType = "text/plain"

// Fetcher retrieves plain-text license bodies.
type Fetcher struct {
	client *integrations.Client
	logger *log.Logger
}

// NewFetcher creates a Fetcher that follows redirects.
func NewFetcher(opts Options) *Fetcher {
	hc := opts.HTTPClient
	if hc == nil {
		hc = httputil.NewClient(opts.Timeout)
	}
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	return &Fetcher{
		client: integrations.NewClient(hc, headers, opts.Attempts),
		logger: opts.logger(),
	}
}

// PlainText fetches u and returns its body.
//
// When the request fails and the path ends in ".txt", the same URL without
// the suffix is tried once. A successful response whose media type is not
// text/plain yields u itself as the text, so the notice at least points at
// the license page.
func (f *Fetcher) PlainText(ctx context.Context, u *url.URL) (string, bool) {
	resp, ok := f.get(ctx, u)
	if ok && !resp.OK() && strings.HasSuffix(u.Path, ".txt") {
		trimmed := *u
		trimmed.Path = strings.TrimSuffix(u.Path, ".txt")
		trimmed.RawPath = ""
		f.logger.Debug("retrying without .txt", "url", trimmed.String())
		resp, ok = f.get(ctx, &trimmed)
	}
	if !ok {
		return "", false
	}
	if !resp.OK() {
		f.logger.Debug("plain text unavailable", "url", u.String(), "status", resp.StatusCode)
		return "", false
	}
	if resp.MediaType != plainTextType {
		return u.String(), true
	}
	return resp.Body, resp.Body != ""
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (*integrations.Response, bool) {
	resp, err := f.client.Fetch(ctx, u.String())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			f.logger.Error("get plain text", "url", u.String(), "err", err)
		}
		return nil, false
	}
	return resp, true
}

package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/noticegen/pkg/buildinfo"
	"github.com/matzehuels/noticegen/pkg/httputil"
	"github.com/matzehuels/noticegen/pkg/integrations"
)

// Prober detects HTTP redirects without following them.
type Prober struct {
	client *integrations.Client
	logger *log.Logger
}

// NewProber creates a Prober. A caller-supplied HTTPClient is copied with
// redirect following disabled.
func NewProber(opts Options) *Prober {
	var hc *http.Client
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		hc = &c
	} else {
		hc = httputil.NewNoRedirectClient(opts.Timeout)
	}
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	return &Prober{
		client: integrations.NewClient(hc, headers, opts.Attempts),
		logger: opts.logger(),
	}
}

// RedirectTarget issues a GET for u and, if the server answered with a 3xx
// status and a Location header, returns that location resolved against the
// request URL.
func (p *Prober) RedirectTarget(ctx context.Context, u *url.URL) (*url.URL, bool) {
	resp, err := p.client.Fetch(ctx, u.String())
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Error("probe redirect", "url", u.String(), "err", err)
		}
		return nil, false
	}
	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return nil, false
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, false
	}
	target, err := url.Parse(loc)
	if err != nil {
		p.logger.Error("invalid redirect location", "url", u.String(), "location", loc, "err", err)
		return nil, false
	}
	return resp.URL.ResolveReference(target), true
}

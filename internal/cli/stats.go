package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/matzehuels/noticegen/pkg/observability"
)

// runStats counts resolution, cache and HTTP events for the --verbose summary.
type runStats struct {
	observability.NoopResolveHooks

	redirects     atomic.Int64
	redirectLimit atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	negative      atomic.Int64
	requests      atomic.Int64
	httpErrors    atomic.Int64
}

var (
	_ observability.ResolveHooks = (*runStats)(nil)
	_ observability.CacheHooks   = (*runStats)(nil)
	_ observability.HTTPHooks    = (*runStats)(nil)
)

// install registers s as the global hooks and returns a function that
// restores the defaults.
func (s *runStats) install() func() {
	observability.SetResolveHooks(s)
	observability.SetCacheHooks(s)
	observability.SetHTTPHooks(s)
	return observability.Reset
}

func (s *runStats) OnRedirect(context.Context, string, string, string) { s.redirects.Add(1) }

func (s *runStats) OnRedirectLimit(context.Context, string, string, int) { s.redirectLimit.Add(1) }

func (s *runStats) OnCacheHit(context.Context, string)  { s.cacheHits.Add(1) }
func (s *runStats) OnCacheMiss(context.Context, string) { s.cacheMisses.Add(1) }

func (s *runStats) OnCacheSet(_ context.Context, _ string, found bool) {
	if !found {
		s.negative.Add(1)
	}
}

func (s *runStats) OnRequest(context.Context, string, string, string) { s.requests.Add(1) }

func (s *runStats) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (s *runStats) OnError(context.Context, string, string, string, error) { s.httpErrors.Add(1) }

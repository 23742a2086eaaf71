package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures a [Fetcher] or [Prober].
type Options struct {
	HTTPClient *http.Client  // Defaults to a client built from Timeout
	Timeout    time.Duration // Per-request timeout; 0 selects httputil.DefaultTimeout
	Attempts   int           // Attempts per request; 0 or 1 disables retry
	Logger     *log.Logger   // Defaults to log.Default()
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

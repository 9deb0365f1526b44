package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter receives errors the SDK could not recover from. Injected into
// the provider and verifier so tests can substitute a recording
// implementation.
type Reporter interface {
	CaptureError(err error, tags map[string]string)
	Flush(timeout time.Duration)
}

// SentryConfig holds Sentry reporter configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	Debug       bool
	SampleRate  float64
}

// SentryReporter forwards captured errors to Sentry.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter initializes a Sentry client on its own hub so multiple
// providers in one process do not share scope.
func NewSentryReporter(cfg SentryConfig) (*SentryReporter, error) {
	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 1.0
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		Debug:       cfg.Debug,
		SampleRate:  sampleRate,
	})
	if err != nil {
		return nil, err
	}

	hub := sentry.NewHub(client, sentry.NewScope())
	return &SentryReporter{hub: hub}, nil
}

func (r *SentryReporter) CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) Flush(timeout time.Duration) {
	r.hub.Flush(timeout)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) CaptureError(error, map[string]string) {}
func (NopReporter) Flush(time.Duration)                   {}

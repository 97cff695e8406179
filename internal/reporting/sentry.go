// Package reporting forwards failed interaction flows to Sentry.
package reporting

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
)

// SentryReporter captures failed flows as Sentry events. With an empty DSN events are
// processed but never sent.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter creates a reporter backed by its own Sentry client.
func NewSentryReporter(opts sentry.ClientOptions) (*SentryReporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Report captures err tagged with the flow that produced it.
func (r *SentryReporter) Report(ctx context.Context, flow string, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("flow", flow)

		var netErr *apperrors.NetworkError
		if errors.As(err, &netErr) {
			scope.SetTag("catalog_operation", netErr.Op)
			scope.SetContext("catalog", sentry.Context{
				"url":         netErr.URL,
				"status_code": netErr.StatusCode,
			})
		}

		hub.CaptureException(err)
	})
}

// Flush waits until buffered events are sent or the timeout expires.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}

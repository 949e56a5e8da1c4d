package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps posthog.Client so callers never have to care
// whether analytics is configured.
type PosthogClientWrapper struct {
	client posthog.Client
	logger *slog.Logger
}

// InitializePosthogClient creates the wrapper. With an empty API key the
// wrapper stays uninitialized and every call is a no-op.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, analytics disabled")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	return &PosthogClientWrapper{client: client, logger: logger}
}

// IsInitialized reports whether analytics is active.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.client != nil
}

// Enqueue sends an event for the given user, silently dropping it when
// analytics is disabled.
func (w *PosthogClientWrapper) Enqueue(distinctID, event string, properties map[string]any) {
	if w.client == nil {
		return
	}
	_ = w.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes and shuts down the underlying client.
func (w *PosthogClientWrapper) Close() {
	if w.client == nil {
		return
	}
	_ = w.client.Close()
}

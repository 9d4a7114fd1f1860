// Package analytics forwards product usage events to PostHog.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is the PostHog ingestion host used when none is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Client wraps posthog.Client so callers need not care whether analytics is configured.
// The zero value and a nil *Client are both valid no-op clients.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient connects to PostHog. An empty apiKey yields a disabled client.
func NewClient(apiKey, endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, usage analytics disabled")
		return &Client{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialise PostHog client, usage analytics disabled", slog.String("error", err.Error()))
		return &Client{logger: logger}
	}
	logger.Info("PostHog client initialised", slog.String("endpoint", endpoint))
	return &Client{posthogClient: client, logger: logger}
}

// Enabled reports whether events are actually sent.
func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Capture enqueues one event for distinctID.
func (c *Client) Capture(distinctID, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	c.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	if err := c.posthogClient.Close(); err != nil {
		c.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}

// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/metrics"
	"github.com/raphaelgruber/animcp/internal/mixamo"
	"github.com/raphaelgruber/animcp/internal/token"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Service *fetch.Service
	Client  *mixamo.Client
	Tokens  *token.Store
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

package mixamo

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pipeline failure classes.
// Use errors.Is() to branch on them in calling code.
var (
	// ErrNotAuthenticated indicates a missing or rejected access token.
	// Never retried automatically; the caller must supply a fresh token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound indicates a search that completed but matched nothing.
	ErrNotFound = errors.New("no animations found")

	// ErrSearchFailed indicates every search term failed at the transport
	// or status level. Distinct from ErrNotFound: retrying the network can
	// help here, trying a different keyword cannot.
	ErrSearchFailed = errors.New("all search queries failed")

	// ErrExportFailed indicates the service explicitly reported the export
	// job as failed. The server message is attached when available.
	ErrExportFailed = errors.New("export failed")

	// ErrExportTimeout indicates polling exhausted its attempt budget
	// without reaching a terminal state.
	ErrExportTimeout = errors.New("export timed out")
)

// StatusError is a non-success HTTP response from the Mixamo API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// statusError builds a StatusError with the body trimmed to a short snippet.
func statusError(code int, body []byte) *StatusError {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return &StatusError{Code: code, Body: snippet}
}

// wrapStatusError maps unauthorized responses onto ErrNotAuthenticated so
// callers can branch without inspecting status codes.
func wrapStatusError(code int, body []byte) error {
	if code == 401 || code == 403 {
		return fmt.Errorf("%w: token rejected (status %d)", ErrNotAuthenticated, code)
	}
	return statusError(code, body)
}

package tools

import (
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so LLM can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult creates a success result with v rendered as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result", err.Error())
	}
	return TextResult(string(data))
}

// PipelineError maps a pipeline failure onto an error result with a
// recovery hint matching the failure class.
func PipelineError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, mixamo.ErrNotAuthenticated):
		return ErrorResult("Not authenticated with Mixamo",
			"Call mixamo_auth with action=set_token and a fresh browser token")
	case errors.Is(err, mixamo.ErrNotFound):
		return ErrorResult("No matching animation found",
			"Try a broader keyword, or call mixamo_keywords for known terms")
	case errors.Is(err, mixamo.ErrExportTimeout):
		return ErrorResult("Export did not finish in time",
			"The render queue is slow right now; retry in a minute")
	case errors.Is(err, mixamo.ErrExportFailed):
		return ErrorResult("Export failed: "+err.Error(),
			"The animation may not retarget onto this character; try another animation or character")
	case errors.Is(err, mixamo.ErrSearchFailed):
		return ErrorResult("Search requests failed",
			"Check network connectivity and token validity")
	default:
		return ErrorResult(err.Error(), "")
	}
}

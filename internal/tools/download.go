package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/fetch"
	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// DownloadInput defines the input schema for the mixamo_download tool.
type DownloadInput struct {
	Query       string `json:"query" jsonschema:"required,Animation keyword or product UUID"`
	CharacterID string `json:"character_id,omitempty" jsonschema:"Target character UUID, defaults to the account's primary character"`
	Name        string `json:"name,omitempty" jsonschema:"Override for the exported animation name"`
	FileName    string `json:"file_name,omitempty" jsonschema:"Override for the local file name"`
	OutputDir   string `json:"output_dir,omitempty" jsonschema:"Download directory, defaults to the detected project output dir"`
}

// NewDownloadHandler creates the mixamo_download tool handler.
// Runs the full pipeline: resolve, export, poll and download one animation.
func NewDownloadHandler(deps *Dependencies) mcp.ToolHandlerFor[DownloadInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DownloadInput) (
		*mcp.CallToolResult, any, error,
	) {
		// Input validation
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide an animation keyword or product UUID"), nil, nil
		}
		if !deps.Client.HasToken() {
			return PipelineError(mixamo.ErrNotAuthenticated), nil, nil
		}

		record, err := deps.Service.Fetch(ctx, input.Query, fetch.Options{
			CharacterID: input.CharacterID,
			Name:        input.Name,
			FileName:    input.FileName,
			OutputDir:   input.OutputDir,
		})
		if err != nil {
			deps.Logger.Error("download failed", "query", input.Query, "error", err)
			return PipelineError(err), nil, nil
		}

		deps.Logger.Info("download completed", "query", input.Query, "path", record.FilePath)
		return JSONResult(record), nil, nil
	}
}

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/fetch"
)

// maxBatchKeywords caps one batch request. Each item is a full
// export + poll + download round trip, so large batches run for minutes.
const maxBatchKeywords = 25

// BatchInput defines the input schema for the mixamo_batch tool.
type BatchInput struct {
	Keywords     []string `json:"keywords" jsonschema:"required,Animation keywords to download, processed in order"`
	CharacterID  string   `json:"character_id,omitempty" jsonschema:"Target character UUID, defaults to the account's primary character"`
	OutputDir    string   `json:"output_dir,omitempty" jsonschema:"Download directory, a per-character subdirectory is created inside"`
	DelaySeconds int      `json:"delay_seconds,omitempty" jsonschema:"Pacing delay between items, default from config"`
}

// NewBatchHandler creates the mixamo_batch tool handler.
// Downloads a list of keywords strictly in order, one export at a time.
func NewBatchHandler(deps *Dependencies) mcp.ToolHandlerFor[BatchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BatchInput) (
		*mcp.CallToolResult, any, error,
	) {
		// Input validation
		if len(input.Keywords) == 0 {
			return ErrorResult("Keywords cannot be empty", "Provide at least one animation keyword"), nil, nil
		}
		if len(input.Keywords) > maxBatchKeywords {
			return ErrorResult(
				fmt.Sprintf("Too many keywords (%d, max %d)", len(input.Keywords), maxBatchKeywords),
				"Split the request into smaller batches"), nil, nil
		}
		for _, keyword := range input.Keywords {
			if keyword == "" {
				return ErrorResult("Keywords must be non-empty", "Remove the blank entry"), nil, nil
			}
		}

		summary, err := deps.Service.FetchBatch(ctx, input.Keywords, fetch.BatchOptions{
			CharacterID: input.CharacterID,
			OutputDir:   input.OutputDir,
			Delay:       time.Duration(input.DelaySeconds) * time.Second,
		})
		if err != nil {
			deps.Logger.Error("batch failed", "keywords", len(input.Keywords), "error", err)
			return PipelineError(err), nil, nil
		}

		deps.Logger.Info("batch completed",
			"total", summary.Total,
			"successful", summary.Successful,
			"failed", summary.Failed,
		)
		return JSONResult(summary), nil, nil
	}
}

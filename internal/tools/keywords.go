package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/keywords"
)

// KeywordsInput defines the input schema for the mixamo_keywords tool.
type KeywordsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter to one category: locomotion, combat, social, dance, sports or misc"`
}

// keywordsResult is the JSON payload returned by the keywords tool.
type keywordsResult struct {
	Categories map[string][]string `json:"categories"`
	Count      int                 `json:"count"`
}

// NewKeywordsHandler creates the mixamo_keywords tool handler.
// Lists the known animation keywords grouped by category.
func NewKeywordsHandler(deps *Dependencies) mcp.ToolHandlerFor[KeywordsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input KeywordsInput) (
		*mcp.CallToolResult, any, error,
	) {
		groups := keywords.ByCategory(input.Category)
		if len(groups) == 0 {
			return ErrorResult("Unknown category: "+input.Category,
				"Valid categories are locomotion, combat, social, dance, sports and misc"), nil, nil
		}

		result := keywordsResult{Categories: make(map[string][]string, len(groups))}
		for category, terms := range groups {
			result.Categories[string(category)] = terms
			result.Count += len(terms)
		}
		return JSONResult(result), nil, nil
	}
}

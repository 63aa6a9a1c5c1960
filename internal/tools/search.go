package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/config"
	"github.com/raphaelgruber/animcp/internal/keywords"
	"github.com/raphaelgruber/animcp/internal/mixamo"
)

// SearchInput defines the input schema for the mixamo_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"required,Animation keyword or phrase, e.g. run or sword attack"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results 1-96, default 24"`
}

// searchResult is the JSON payload returned by the search tool.
type searchResult struct {
	Query    string             `json:"query"`
	Expanded []string           `json:"expanded_terms"`
	Count    int                `json:"count"`
	Results  []mixamo.Animation `json:"results"`
}

// NewSearchHandler creates the mixamo_search tool handler.
// Expands the query into synonyms and aggregates catalog results.
func NewSearchHandler(deps *Dependencies, cfg *config.Config) mcp.ToolHandlerFor[SearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, any, error,
	) {
		// Input validation
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide an animation keyword"), nil, nil
		}

		limit := input.Limit
		if limit <= 0 {
			limit = mixamo.DefaultSearchLimit
			if cfg != nil && cfg.SearchLimit > 0 {
				limit = cfg.SearchLimit
			}
		}
		if limit > 96 {
			return ErrorResult("Limit must be 1-96", "Reduce limit value"), nil, nil
		}

		results, err := deps.Service.Search(ctx, input.Query, limit)
		if err != nil {
			deps.Logger.Error("search failed", "query", input.Query, "error", err)
			return PipelineError(err), nil, nil
		}

		deps.Logger.Info("search completed", "query", input.Query, "results", len(results))
		return JSONResult(searchResult{
			Query:    input.Query,
			Expanded: keywords.Expand(input.Query),
			Count:    len(results),
			Results:  results,
		}), nil, nil
	}
}

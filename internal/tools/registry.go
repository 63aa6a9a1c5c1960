package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/animcp/internal/config"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg *config.Config) {
	// Auth tool - token management
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_auth",
		Description: "Manage the Mixamo access token: check status, set a new token or clear it",
	}, NewAuthHandler(deps))

	// Search tool - synonym-expanded catalog search
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_search",
		Description: "Search the Mixamo animation catalog with synonym expansion",
	}, NewSearchHandler(deps, cfg))

	// Download tool - full single-animation pipeline
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_download",
		Description: "Download one animation as FBX: search, export, poll and save",
	}, NewDownloadHandler(deps))

	// Batch tool - sequential multi-keyword download
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_batch",
		Description: "Download a list of animation keywords sequentially into one directory",
	}, NewBatchHandler(deps))

	// Keywords tool - catalog of known terms
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_keywords",
		Description: "List the known animation keywords grouped by category",
	}, NewKeywordsHandler(deps))

	// Upload tool - character auto-rigging
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mixamo_upload_character",
		Description: "Upload a character model and wait for auto-rigging",
	}, NewUploadHandler(deps))
}

package tools

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// UploadInput defines the input schema for the mixamo_upload_character tool.
type UploadInput struct {
	FilePath string `json:"file_path" jsonschema:"required,Path to the character model file (fbx, obj or zip)"`
	Name     string `json:"name,omitempty" jsonschema:"Character name, defaults to the file name"`
}

// NewUploadHandler creates the mixamo_upload_character tool handler.
// Uploads a character model and waits for auto-rigging to finish.
func NewUploadHandler(deps *Dependencies) mcp.ToolHandlerFor[UploadInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UploadInput) (
		*mcp.CallToolResult, any, error,
	) {
		// Input validation
		if input.FilePath == "" {
			return ErrorResult("File path cannot be empty", "Provide the path to a character model file"), nil, nil
		}
		if _, err := os.Stat(input.FilePath); err != nil {
			return ErrorResult("Cannot read file: "+input.FilePath, "Check the path exists and is readable"), nil, nil
		}

		character, err := deps.Service.UploadCharacter(ctx, input.FilePath, input.Name)
		if err != nil {
			deps.Logger.Error("character upload failed", "file", input.FilePath, "error", err)
			return PipelineError(err), nil, nil
		}

		deps.Logger.Info("character uploaded", "id", character.ID, "name", character.Name)
		return JSONResult(character), nil, nil
	}
}

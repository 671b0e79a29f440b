package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	forgetToolName    = "insight_forget"
	forgetDescription = "Delete a single insight from the recall store by id. Deleting an id that does not exist is not an error; the result reports whether anything was removed."
)

// ForgetInput represents the input arguments for the insight_forget tool.
type ForgetInput struct {
	ID int64 `json:"id" jsonschema:"the id of the insight to delete"`
}

// ForgetOutput reports the outcome of the delete.
type ForgetOutput struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// handleForget deletes an insight via MCP.
func (s *Server) handleForget(ctx context.Context, _ *mcp.CallToolRequest, input ForgetInput) (*mcp.CallToolResult, ForgetOutput, error) {
	if input.ID <= 0 {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "id must be a positive integer"},
			},
		}, ForgetOutput{}, nil
	}

	deleted, err := s.config.Storer.Delete(ctx, input.ID)
	if err != nil {
		s.config.Logger.Error("MCP insight forget failed", "id", input.ID, "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to delete insight: %v", err)},
			},
		}, ForgetOutput{}, nil
	}

	output := ForgetOutput{Deleted: deleted, ID: input.ID}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize result: %v", err)},
			},
		}, ForgetOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

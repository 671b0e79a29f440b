package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/recall/pkg/store"
)

var (
	saveToolName    = "insight_save"
	saveDescription = "Save an insight to the recall store so future sessions can retrieve it. Use this when you discover something worth remembering: a root cause, a design decision, a non-obvious constraint."
)

// SaveInput represents the input arguments for the insight_save tool.
type SaveInput struct {
	Type      string `json:"type,omitempty" jsonschema:"message type tag, e.g. insight, decision, observation (default: insight)"`
	Content   string `json:"content" jsonschema:"the insight text to persist"`
	SessionID string `json:"session_id,omitempty" jsonschema:"identifier of the producing session"`
	Repo      string `json:"repo,omitempty" jsonschema:"the originating project or repository"`
}

// SaveOutput represents the persisted message.
type SaveOutput struct {
	Message store.Message `json:"message"`
}

// handleSave persists an insight via MCP. Unlike the HTTP producer hook there
// is no significance filter here: a tool call is explicit intent to save.
func (s *Server) handleSave(ctx context.Context, _ *mcp.CallToolRequest, input SaveInput) (*mcp.CallToolResult, SaveOutput, error) {
	if input.Content == "" {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: "content is required"},
			},
		}, SaveOutput{}, nil
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "insight"
	}

	created, err := s.config.Storer.Create(ctx, store.Message{
		Type:      msgType,
		Content:   input.Content,
		SessionID: input.SessionID,
		Repo:      input.Repo,
	})
	if err != nil {
		s.config.Logger.Error("MCP insight save failed", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to save insight: %v", err)},
			},
		}, SaveOutput{}, nil
	}

	output := SaveOutput{Message: *created}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize result: %v", err)},
			},
		}, SaveOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/recall/pkg/contextblock"
	"github.com/papercomputeco/recall/pkg/store"
)

var (
	recallToolName    = "insight_recall"
	recallDescription = "Recall recent insights from the recall store, newest first. Returns the stored messages plus a rendered context block suitable for injecting into a prompt."
)

// defaultRecallLimit matches the API's default page size.
const defaultRecallLimit = 20

// RecallInput represents the input arguments for the insight_recall tool.
type RecallInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of insights to return (default: 20)"`
}

// RecallOutput represents the recalled insights.
type RecallOutput struct {
	Messages []*store.Message `json:"messages"`
	Count    int              `json:"count"`
	Context  string           `json:"context"`
}

// handleRecall returns recent insights via MCP.
func (s *Server) handleRecall(ctx context.Context, _ *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, RecallOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecallLimit
	}

	messages, err := s.config.Storer.List(ctx, limit, 0)
	if err != nil {
		s.config.Logger.Error("MCP insight recall failed", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to recall insights: %v", err)},
			},
		}, RecallOutput{}, nil
	}

	if messages == nil {
		messages = []*store.Message{}
	}

	output := RecallOutput{
		Messages: messages,
		Count:    len(messages),
		Context:  contextblock.Format(messages),
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, RecallOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

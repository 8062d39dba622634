package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterWriteTools adds the tools that touch the project to the MCP server.
func RegisterWriteTools(s *server.MCPServer, state *State) {
	s.AddTool(rebuildTool(), rebuildHandler(state))
}

// --- rebuild ---

func rebuildTool() mcp.Tool {
	return mcp.NewTool("rebuild",
		mcp.WithDescription("Re-read every node record, rebuild the graph and rewrite all site artifacts."),
	)
}

func rebuildHandler(state *State) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Rebuild(ctx)
		if err != nil {
			return toolError(err)
		}
		s := res.Stats
		return mcp.NewToolResultText(fmt.Sprintf(
			"Built %d records: %d vertices, %d edges, %d broken deps, %d cycles in %s",
			s.Records, s.Vertices, s.Edges, s.Broken, s.Cycles, s.Duration,
		)), nil
	}
}

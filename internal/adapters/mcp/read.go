package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"concepdag/internal/application"
	"concepdag/internal/application/commands"
	"concepdag/internal/domain"
	"concepdag/internal/graph"
)

// RegisterReadTools adds all read-only graph tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, state *State) {
	s.AddTool(nodeTool(), nodeHandler(state))
	s.AddTool(depsTool(), depsHandler(state, false))
	s.AddTool(rdepsTool(), depsHandler(state, true))
	s.AddTool(searchTool(), searchHandler(state))
	s.AddTool(treeTool(), treeHandler(state))
	s.AddTool(cyclesTool(), cyclesHandler(state))
	s.AddTool(brokenDepsTool(), brokenDepsHandler(state))
	s.AddTool(orderTool(), orderHandler(state))
}

func uciArgument() mcp.ToolOption {
	return mcp.WithString("uci",
		mcp.Description("Unique concept identifier, e.g. /math/algebra/groups"),
		mcp.Required(),
	)
}

// --- node ---

func nodeTool() mcp.Tool {
	return mcp.NewTool("node",
		mcp.WithDescription("Show the render context of a node: status, graph metrics, grouped deps with reasons, rdeps and metadata."),
		uciArgument(),
	)
}

func nodeHandler(state *State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		nodeCtx, err := commands.NewShowNodeCommand(res, req.GetString("uci", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		data, err := json.MarshalIndent(nodeCtx, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- deps / rdeps ---

func depsTool() mcp.Tool {
	return mcp.NewTool("deps",
		mcp.WithDescription("List the direct dependencies of a node with the reason of each edge. Set transitive to list every node it depends on."),
		uciArgument(),
		mcp.WithBoolean("transitive",
			mcp.Description("List the transitive dependencies instead"),
		),
	)
}

func rdepsTool() mcp.Tool {
	return mcp.NewTool("rdeps",
		mcp.WithDescription("List the nodes that directly depend on a node. Set transitive to list every node that depends on it."),
		uciArgument(),
		mcp.WithBoolean("transitive",
			mcp.Description("List the transitive dependents instead"),
		),
	)
}

func depsHandler(state *State, reverse bool) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		uci := req.GetString("uci", "")
		if err := application.ValidateUCI("uci", uci); err != nil {
			return toolError(err)
		}

		if req.GetBool("transitive", false) {
			list, err := transitive(res.Graph, uci, reverse)
			if err != nil {
				return toolError(notFound(uci, err))
			}
			if len(list) == 0 {
				return mcp.NewToolResultText("No results."), nil
			}
			return mcp.NewToolResultText(strings.Join(list, "\n") + "\n"), nil
		}

		var neighbors *graph.Neighbors
		if reverse {
			neighbors, err = res.Graph.AdjacentOf(uci)
		} else {
			neighbors, err = res.Graph.ReverseAdjacentOf(uci)
		}
		if err != nil {
			return toolError(notFound(uci, err))
		}
		if neighbors.Len() == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		var sb strings.Builder
		for pair := neighbors.Oldest(); pair != nil; pair = pair.Next() {
			sb.WriteString(pair.Key)
			if pair.Value != nil {
				fmt.Fprintf(&sb, "  %s", *pair.Value)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// transitive lists the reachable vertices without the vertex itself
func transitive(g *graph.Graph, uci string, reverse bool) ([]string, error) {
	var list []string
	var err error
	if reverse {
		list, err = g.TransitiveAdjOf(uci)
	} else {
		list, err = g.TransitiveReverseAdjOf(uci)
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != uci {
			out = append(out, v)
		}
	}
	return out, nil
}

func notFound(uci string, err error) error {
	return fmt.Errorf("%w: %v", &application.NodeNotFoundError{UCI: uci}, err)
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search nodes by UCI, title or metadata. Returns matches ranked by relevance."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(state *State) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchCommand(res.Search, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.UCI, r.Title, r.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the site index as a tree of sections and nodes."),
	)
}

func treeHandler(state *State) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		root, err := commands.NewBuildTreeCommand(res, "root").Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		RenderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// RenderTree writes the browse tree below node with two-space indentation
func RenderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if node.Parent != nil {
		if node.IsLeaf() {
			fmt.Fprintf(sb, "%s%s  %s\n", prefix, node.Name, node.UCI())
		} else {
			fmt.Fprintf(sb, "%s%s\n", prefix, node.Name)
		}
		prefix += "  "
	}
	for _, child := range node.Children {
		RenderTree(sb, child, prefix)
	}
}

// --- cycles ---

func cyclesTool() mcp.Tool {
	return mcp.NewTool("cycles",
		mcp.WithDescription("List the groups of nodes that depend on each other in a cycle."),
	)
}

func cyclesHandler(state *State) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		if res.Analysis.Cycles.Len() == 0 {
			return mcp.NewToolResultText("No cycles."), nil
		}
		var sb strings.Builder
		for pair := res.Analysis.Cycles.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(&sb, "%d: %s\n", pair.Key, strings.Join(pair.Value, " "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- broken_deps ---

func brokenDepsTool() mcp.Tool {
	return mcp.NewTool("broken_deps",
		mcp.WithDescription("List referenced nodes that have no record, with the nodes referring to them."),
	)
}

func brokenDepsHandler(state *State) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		if res.Broken.Len() == 0 {
			return mcp.NewToolResultText("No broken dependencies."), nil
		}
		var sb strings.Builder
		for pair := res.Broken.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(&sb, "%s  <- %s\n", pair.Key, strings.Join(pair.Value, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- order ---

func orderTool() mcp.Tool {
	return mcp.NewTool("order",
		mcp.WithDescription("List nodes in processing order: every node comes after the nodes it depends on, except inside cycles."),
	)
}

func orderHandler(state *State) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := state.Result()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(res.Analysis.RecordOrder, func(uci string) string { return uci })
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "concepdag/internal/adapters/mcp"
	"concepdag/internal/application"
	"concepdag/internal/config"
	"concepdag/internal/logging"
	"concepdag/internal/project"
)

func main() {
	projectFlag := flag.String("project", config.ProjectPath(), "path to the project directory")
	levelFlag := flag.String("log-level", config.LogLevel(), "log level (debug, info, warn, error)")
	flag.Parse()

	// stdout carries the protocol
	logger := logging.New(os.Stderr, *levelFlag)

	p, err := project.Open(*projectFlag, logger)
	if err != nil {
		logger.Fatal("could not open project", "err", err)
	}
	defer p.Close()

	state := mcpadapter.NewState(func(ctx context.Context) (*application.BuildResult, error) {
		return p.Build(ctx, true, true)
	})
	if _, err := state.Rebuild(context.Background()); err != nil {
		logger.Warn("initial build failed", "err", err)
	}

	mcpServer := server.NewMCPServer(
		"concepdag-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, state)
	mcpadapter.RegisterWriteTools(mcpServer, state)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("concepdag-mcp stopped", "err", err)
	}
}

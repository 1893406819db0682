// Command instclass-mcp serves instruction classification as an MCP tool
// over stdio.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/instclass/config"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	// stdout carries the protocol; logs always go to stderr or a file.
	closer, err := config.SetupLogging(cfg, os.Stderr)
	if err != nil {
		atexit.Fatalf("%v", err)
	}
	atexit.Register(func() { closer.Close() })

	mcpServer := newServer(cfg)

	slog.Info("Starting instclass MCP server via stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		atexit.Fatalf("Server error: %v", err)
	}

	atexit.Exit(0)
}

func newServer(cfg *config.Config) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"InstClass",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	classifyTool := mcp.NewTool("classify_ir",
		mcp.WithDescription("Classify the instructions of every function in an "+
			"LLVM IR file (.ll assembly or .yaml program) into ten categories "+
			"and report the count per category."),
		mcp.WithString("path",
			mcp.Description("Path of the IR file to classify."),
			mcp.Required(),
		),
		mcp.WithString("function",
			mcp.Description("Only classify the function with this name."),
		),
		mcp.WithString("format",
			mcp.Description("Report format."),
			mcp.DefaultString("plain"),
			mcp.Enum("plain", "pass", "json"),
		),
	)

	h := &handler{workers: cfg.Parallelism}
	mcpServer.AddTool(classifyTool, h.handleClassifyIR)

	return mcpServer
}

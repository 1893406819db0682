package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sarchlab/instclass/classify"
	"github.com/sarchlab/instclass/driver"
	"github.com/sarchlab/instclass/ir"
	"github.com/sarchlab/instclass/report"
)

type handler struct {
	workers int
}

func (h *handler) handleClassifyIR(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, errors.New("missing or invalid required argument: path (string)")
	}

	formatName, ok := args["format"].(string)
	if !ok || formatName == "" {
		formatName = "plain"
	}

	format, err := classify.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	var names []string
	if fn, ok := args["function"].(string); ok && fn != "" {
		names = []string{fn}
	}

	slog.Info("Handling classify_ir", "Path", path, "Function", names, "Format", format)

	mod, err := ir.LoadModule(path)
	if err != nil {
		return nil, err
	}

	fns := mod.Filter(names)
	if len(fns) == 0 && len(names) > 0 {
		return nil, fmt.Errorf("function %s not found in %s", names[0], path)
	}

	sink := driver.NewMemorySink()
	if err := driver.ClassifyParallel(ctx, fns, h.workers, sink); err != nil {
		return nil, fmt.Errorf("failed to classify %s: %w", path, err)
	}

	var sb strings.Builder
	if err := report.WriteResults(&sb, sink.Results(), format); err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: sb.String(),
			},
		},
	}, nil
}

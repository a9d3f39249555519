// Package mcpserver exposes the registry's capabilities as MCP tools, each
// handler funneling into the same resolve/encode/invoke/classify pipeline the
// HTTP endpoint uses.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taddiemason/Gmail-MCP-Server/internal/codec"
	"github.com/taddiemason/Gmail-MCP-Server/internal/limits"
	"github.com/taddiemason/Gmail-MCP-Server/internal/protocol"
	"github.com/taddiemason/Gmail-MCP-Server/internal/registry"
	"github.com/taddiemason/Gmail-MCP-Server/internal/security"
	"github.com/taddiemason/Gmail-MCP-Server/internal/worker"
)

// Build creates an MCP server with one tool per registry capability.
func Build(reg *registry.Registry, invoker worker.Invoker, limiter *limits.Limiter, logger *slog.Logger) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    reg.Service(),
		Version: reg.Version(),
	}, nil)

	for _, capability := range reg.Capabilities() {
		addTool(server, capability, invoker, limiter, logger)
	}

	return server, nil
}

func addTool(server *mcp.Server, capability *registry.Capability, invoker worker.Invoker, limiter *limits.Limiter, logger *slog.Logger) {
	tool := &mcp.Tool{
		Name:        capability.Name,
		Title:       capability.Title,
		Description: capability.Description,
		Annotations: &mcp.ToolAnnotations{
			Title:          capability.Title,
			ReadOnlyHint:   capability.ReadOnly,
			IdempotentHint: capability.Idempotent,
		},
	}
	if capability.InputSchema != nil {
		tool.InputSchema = capability.InputSchema
	}

	mcp.AddTool(server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, map[string]any, error) {
		if logger != nil {
			logger.Info("mcp tool call", "tool", capability.Name, "args", security.RedactArguments(input))
		}

		if err := capability.ValidateArguments(input); err != nil {
			return errorResult(err.Error(), protocol.KindInvalidRequest, "")
		}

		release, err := limiter.Acquire(ctx)
		if err != nil {
			return errorResult(err.Error(), protocol.KindExecutionFailed, "")
		}
		defer release()

		res, err := invoker.Invoke(ctx, codec.Invocation{
			Tool:      capability.Name,
			Schema:    capability.Schema,
			Arguments: input,
		}, capability.Timeout)
		if err != nil {
			return errorResult(err.Error(), protocol.KindExecutionFailed, "")
		}

		outcome := protocol.Classify(res)
		switch outcome.Variant {
		case protocol.VariantSuccess:
			return nil, map[string]any{"result": outcome.Payload}, nil
		case protocol.VariantRaw:
			return nil, map[string]any{"result": outcome.Text}, nil
		default:
			return errorResult(outcome.Message, outcome.Kind, outcome.Traceback)
		}
	})
}

func errorResult(message, kind, traceback string) (*mcp.CallToolResult, map[string]any, error) {
	body := map[string]any{"error": message}
	if kind != "" {
		body["type"] = kind
	}
	if traceback != "" {
		body["traceback"] = traceback
	}
	return &mcp.CallToolResult{IsError: true}, body, nil
}

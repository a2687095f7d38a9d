// Package mcp exposes the assistant's tools to external conversational
// agents over the Model Context Protocol. Tool declarations are the
// same ones registered for Gemini function calling; only the schema
// dialect differs.
package mcp

import (
	"context"
	"encoding/json"

	"github.com/instavoice/assistant/pkg/tool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genai"
)

// NewServer builds an MCP server serving every tool in the registry.
func NewServer(registry *tool.Registry, version string) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "instavoice-assistant",
		Version: version,
	}, nil)

	for _, decl := range registry.Declarations() {
		schema, err := convertGenaiToJSONSchema(decl.Parameters)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert tool schema", goerr.V("tool", decl.Name))
		}

		server.AddTool(&mcp.Tool{
			Name:        decl.Name,
			Description: decl.Description,
			InputSchema: schema,
		}, dispatch(registry, decl.Name))
	}

	return server, nil
}

// dispatch adapts an MCP tool call into a registry execution.
func dispatch(registry *tool.Registry, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, goerr.Wrap(err, "failed to parse tool arguments", goerr.V("tool", name))
			}
		}

		resp, err := registry.Execute(ctx, genai.FunctionCall{
			Name: name,
			Args: args,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to execute tool", goerr.V("tool", name))
		}

		result, _ := resp.Response["result"].(string)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: result},
			},
		}, nil
	}
}

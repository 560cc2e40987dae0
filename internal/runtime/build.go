package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/devterm-mcp-server/internal/constants"
	"github.com/codex-k8s/devterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/devterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// ToolInput is the MCP argument object shared by all tools.
type ToolInput struct {
	Input         string `json:"input,omitempty" jsonschema:"text to transform; generator tools ignore it"`
	CorrelationID string `json:"correlation_id,omitempty" jsonschema:"optional id linking related calls"`
}

// Builder constructs an MCP server over a Service.
type Builder struct {
	// Service executes tool calls.
	Service *Service
}

// Build creates an MCP server with one tool per enabled descriptor and the
// catalog resource.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, error) {
	if b.Service == nil {
		return nil, fmt.Errorf("service is nil")
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)

	catalog, err := json.MarshalIndent(Infos(b.Service.Catalog.List()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	addStaticResource(server, dsl.ResourceConfig{
		Name:        "tools",
		URI:         constants.CatalogURI,
		Description: "Tools exposed by this server, in display order.",
		MIMEType:    "application/json",
		Text:        string(catalog),
	})
	for _, res := range cfg.Resources {
		addStaticResource(server, res)
	}

	for _, desc := range b.Service.Catalog.List() {
		b.addTool(server, desc)
	}

	return server, nil
}

func (b Builder) addTool(server *mcp.Server, desc tools.Descriptor) {
	mcpTool := &mcp.Tool{
		Name:        string(desc.ID),
		Title:       desc.Title,
		Description: desc.Description,
		Annotations: buildAnnotations(desc),
	}

	mcp.AddTool(server, mcpTool, func(ctx context.Context, _ *mcp.CallToolRequest, in ToolInput) (*mcp.CallToolResult, protocol.ToolResponse, error) {
		resp := b.Service.Call(ctx, Call{
			Tool:          string(desc.ID),
			Input:         in.Input,
			CorrelationID: in.CorrelationID,
		})
		return &mcp.CallToolResult{IsError: resp.Status != protocol.StatusSuccess}, resp, nil
	})
}

func addStaticResource(server *mcp.Server, res dsl.ResourceConfig) {
	resource := res
	server.AddResource(&mcp.Resource{
		Name:        resource.Name,
		URI:         resource.URI,
		Description: resource.Description,
		MIMEType:    resource.MIMEType,
	}, func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: resource.URI, MIMEType: resource.MIMEType, Text: resource.Text},
			},
		}, nil
	})
}

func buildAnnotations(desc tools.Descriptor) *mcp.ToolAnnotations {
	destructive := false
	openWorld := false
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    !desc.WritesFiles,
		DestructiveHint: &destructive,
		IdempotentHint:  desc.Idempotent,
		OpenWorldHint:   &openWorld,
		Title:           desc.Title,
	}
}

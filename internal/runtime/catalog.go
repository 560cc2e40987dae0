package runtime

import (
	"fmt"

	"github.com/codex-k8s/devterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/devterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// Catalog is the registry view exposed by the server: disabled tools are
// hidden and configured descriptions replace the built-in ones.
type Catalog struct {
	registry     *tools.Registry
	disabled     map[tools.ID]struct{}
	descriptions map[tools.ID]string
}

// NewCatalog applies per-tool overrides from cfg to registry.
func NewCatalog(registry *tools.Registry, cfg *dsl.Config) *Catalog {
	c := &Catalog{
		registry:     registry,
		disabled:     map[tools.ID]struct{}{},
		descriptions: map[tools.ID]string{},
	}
	if cfg == nil {
		return c
	}
	for _, tool := range cfg.Tools {
		id := tools.ID(tool.ID)
		if tool.Disabled {
			c.disabled[id] = struct{}{}
		}
		if tool.Description != "" {
			c.descriptions[id] = tool.Description
		}
	}
	return c
}

// Get returns an enabled descriptor.
func (c *Catalog) Get(id tools.ID) (tools.Descriptor, error) {
	if _, off := c.disabled[id]; off {
		return tools.Descriptor{}, fmt.Errorf("%w: %s", tools.ErrUnknownTool, id)
	}
	desc, err := c.registry.Get(id)
	if err != nil {
		return tools.Descriptor{}, err
	}
	if text, ok := c.descriptions[id]; ok {
		desc.Description = text
	}
	return desc, nil
}

// List returns enabled descriptors in display order.
func (c *Catalog) List() []tools.Descriptor {
	all := c.registry.List()
	out := make([]tools.Descriptor, 0, len(all))
	for _, item := range all {
		desc, err := c.Get(item.ID)
		if err != nil {
			continue
		}
		out = append(out, desc)
	}
	return out
}

// Info converts a descriptor into its API form.
func Info(desc tools.Descriptor) protocol.ToolInfo {
	return protocol.ToolInfo{
		ID:           string(desc.ID),
		Name:         desc.DisplayName,
		Title:        desc.Title,
		Placeholder:  desc.Placeholder,
		Description:  desc.Description,
		IgnoresInput: desc.IgnoresInput,
	}
}

// Infos converts descriptors, keeping order.
func Infos(list []tools.Descriptor) []protocol.ToolInfo {
	out := make([]protocol.ToolInfo, len(list))
	for i, desc := range list {
		out[i] = Info(desc)
	}
	return out
}

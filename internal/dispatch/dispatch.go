package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// ErrorPrefix starts every failed output.
const ErrorPrefix = "Error: "

// Result is the outcome of one tool execution.
type Result struct {
	// Tool is the requested tool identifier.
	Tool tools.ID
	// Success reports whether the transform succeeded.
	Success bool
	// Output is the transform output or an ErrorPrefix message.
	Output string
	// Err is the failure cause, nil on success.
	Err error
}

// Lookup resolves tool descriptors.
type Lookup interface {
	// Get returns the descriptor for id.
	Get(id tools.ID) (tools.Descriptor, error)
}

// Dispatcher runs one tool per request. It holds no per-call state.
type Dispatcher struct {
	registry Lookup
}

// New returns a dispatcher over registry.
func New(registry Lookup) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Execute trims rawInput, runs the tool and converts any failure into an
// ErrorPrefix message carrying the cause's text.
func (d *Dispatcher) Execute(ctx context.Context, toolID tools.ID, rawInput string) Result {
	if err := ctx.Err(); err != nil {
		return failed(toolID, err)
	}
	desc, err := d.registry.Get(toolID)
	if err != nil {
		return failed(toolID, err)
	}

	output, err := run(desc.Transform, strings.TrimSpace(rawInput))
	if err != nil {
		return failed(toolID, err)
	}
	return Result{Tool: toolID, Success: true, Output: output}
}

func run(transform tools.Transform, input string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return transform(input)
}

func failed(toolID tools.ID, err error) Result {
	return Result{Tool: toolID, Success: false, Output: ErrorPrefix + err.Error(), Err: err}
}

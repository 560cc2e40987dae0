package limits

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/codex-k8s/devterm-mcp-server/internal/templates"
)

// Policy limits usage of a single tool. Zero values disable a check.
type Policy struct {
	// RatePerMinute limits calls per minute.
	RatePerMinute int
	// MaxTotal limits total calls for the process lifetime.
	MaxTotal int
	// MaxInputLength limits input size in bytes.
	MaxInputLength int
}

// Decision is the guard verdict for one call.
type Decision struct {
	// Allowed reports whether the call may proceed.
	Allowed bool
	// Reason explains a denial.
	Reason string
}

type toolState struct {
	count   int
	limiter *rate.Limiter
}

// Guard keeps per-tool counters and rate limiters.
type Guard struct {
	mu       sync.Mutex
	policies map[string]Policy
	byTool   map[string]*toolState
	renderer templates.Renderer
}

// New creates a guard for the given per-tool policies.
func New(policies map[string]Policy, renderer templates.Renderer) *Guard {
	copied := make(map[string]Policy, len(policies))
	for tool, policy := range policies {
		copied[tool] = policy
	}
	return &Guard{
		policies: copied,
		byTool:   make(map[string]*toolState),
		renderer: renderer,
	}
}

// Check reports whether tool may run with input and counts allowed calls.
func (g *Guard) Check(tool, input string) Decision {
	if g == nil {
		return Decision{Allowed: true}
	}
	policy, ok := g.policies[tool]
	if !ok {
		return Decision{Allowed: true}
	}

	if policy.MaxInputLength > 0 && len(input) > policy.MaxInputLength {
		return deny(g.render("limits.max_input_length", map[string]any{"Tool": tool, "MaxInputLength": policy.MaxInputLength},
			fmt.Sprintf("Input for %s is too long", tool)))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.byTool[tool]
	if state == nil {
		state = &toolState{}
		if policy.RatePerMinute > 0 {
			state.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(policy.RatePerMinute)), policy.RatePerMinute)
		}
		g.byTool[tool] = state
	}

	if policy.MaxTotal > 0 && state.count >= policy.MaxTotal {
		return deny(g.render("limits.max_total", map[string]any{"Tool": tool}, "Maximum number of calls exceeded"))
	}
	if state.limiter != nil && !state.limiter.Allow() {
		return deny(g.render("limits.rate_limit", map[string]any{"Tool": tool}, "Rate limit exceeded"))
	}

	state.count++
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func (g *Guard) render(key string, data map[string]any, fallback string) string {
	if g.renderer == nil {
		return fallback
	}
	rendered, err := g.renderer.Render(key, data)
	if err != nil {
		return fallback
	}
	return rendered
}

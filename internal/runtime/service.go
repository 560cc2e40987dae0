package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/codex-k8s/devterm-mcp-server/internal/audit"
	"github.com/codex-k8s/devterm-mcp-server/internal/constants"
	"github.com/codex-k8s/devterm-mcp-server/internal/dispatch"
	"github.com/codex-k8s/devterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/devterm-mcp-server/internal/limits"
	"github.com/codex-k8s/devterm-mcp-server/internal/protocol"
	"github.com/codex-k8s/devterm-mcp-server/internal/resultcache"
	"github.com/codex-k8s/devterm-mcp-server/internal/security"
	"github.com/codex-k8s/devterm-mcp-server/internal/templates"
	"github.com/codex-k8s/devterm-mcp-server/internal/timeutil"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// Call is a single tool execution request.
type Call struct {
	// Tool is the tool identifier.
	Tool string
	// Input is the raw, untrimmed input.
	Input string
	// CorrelationID links related requests; generated when empty.
	CorrelationID string
}

// Service runs tool calls for every surface.
type Service struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
	// Catalog resolves enabled tools.
	Catalog *Catalog
	// Dispatcher executes tools.
	Dispatcher *dispatch.Dispatcher
	// Limits guards per-tool usage.
	Limits *limits.Guard
	// Cache stores outputs of idempotent tools.
	Cache *resultcache.Cache
}

// NewService wires a Service from validated config.
func NewService(cfg *dsl.Config, registry *tools.Registry, logger *slog.Logger, auditLogger audit.Logger, renderer templates.Renderer) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	catalog := NewCatalog(registry, cfg)

	policies := make(map[string]limits.Policy)
	for _, tool := range cfg.Tools {
		if tool.RatePerMinute == 0 && tool.MaxTotal == 0 && tool.MaxInputLength == 0 {
			continue
		}
		policies[tool.ID] = limits.Policy{
			RatePerMinute:  tool.RatePerMinute,
			MaxTotal:       tool.MaxTotal,
			MaxInputLength: tool.MaxInputLength,
		}
	}

	var cache *resultcache.Cache
	if cfg.Server.ResultCache.Enabled {
		ttl, err := timeutil.ParsePositive(cfg.Server.ResultCache.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid result cache ttl: %w", err)
		}
		cache = resultcache.New(ttl, cfg.Server.ResultCache.MaxEntries)
	}

	return &Service{
		Logger:     logger,
		Audit:      auditLogger,
		Catalog:    catalog,
		Dispatcher: dispatch.New(catalog),
		Limits:     limits.New(policies, renderer),
		Cache:      cache,
	}, nil
}

// Call executes one tool and returns the fixed response envelope.
func (s *Service) Call(ctx context.Context, call Call) protocol.ToolResponse {
	correlationID := strings.TrimSpace(call.CorrelationID)
	if correlationID == "" {
		correlationID = newCorrelationID()
	}
	input := strings.TrimSpace(call.Input)
	resp := protocol.ToolResponse{Tool: call.Tool, CorrelationID: correlationID}

	if s.Logger != nil {
		s.Logger.Info("tool call", "tool", call.Tool, "correlation_id", correlationID, "input_bytes", len(input))
	}
	s.record(ctx, audit.Event{Type: constants.EventToolCall, Tool: call.Tool, CorrelationID: correlationID})

	if decision := s.Limits.Check(call.Tool, input); !decision.Allowed {
		resp.Status = protocol.StatusDenied
		resp.Output = dispatch.ErrorPrefix + decision.Reason
		if s.Logger != nil {
			s.Logger.Warn("tool call denied", "tool", call.Tool, "correlation_id", correlationID, "reason", decision.Reason)
		}
		s.record(ctx, audit.Event{Type: constants.EventLimitDenied, Tool: call.Tool, CorrelationID: correlationID, Status: resp.Status, Detail: decision.Reason})
		return resp
	}

	cacheKey := s.cacheKey(call.Tool, input)
	if cacheKey != "" {
		if output, ok := s.Cache.Get(cacheKey); ok {
			resp.Status = protocol.StatusSuccess
			resp.Output = output
			resp.Cached = true
			if s.Logger != nil {
				s.Logger.Info("tool cache hit", "tool", call.Tool, "correlation_id", correlationID)
			}
			s.record(ctx, audit.Event{Type: constants.EventCacheHit, Tool: call.Tool, CorrelationID: correlationID, Status: resp.Status})
			return resp
		}
	}

	result := s.Dispatcher.Execute(ctx, tools.ID(call.Tool), input)
	resp.Output = result.Output
	if !result.Success {
		resp.Status = protocol.StatusError
		if s.Logger != nil {
			s.Logger.Warn("tool failed", "tool", call.Tool, "correlation_id", correlationID, "error", result.Err)
		}
		s.record(ctx, audit.Event{Type: constants.EventToolError, Tool: call.Tool, CorrelationID: correlationID, Status: resp.Status, Detail: security.Truncate(result.Output, security.MaxLoggedLength)})
		return resp
	}

	resp.Status = protocol.StatusSuccess
	s.record(ctx, audit.Event{Type: constants.EventToolOK, Tool: call.Tool, CorrelationID: correlationID, Status: resp.Status, Detail: security.RedactOutput(call.Tool, result.Output)})
	if cacheKey != "" {
		s.Cache.Set(cacheKey, result.Output)
		s.record(ctx, audit.Event{Type: constants.EventCacheStore, Tool: call.Tool, CorrelationID: correlationID, Status: resp.Status})
	}
	return resp
}

func (s *Service) cacheKey(tool, input string) string {
	if s.Cache == nil {
		return ""
	}
	desc, err := s.Catalog.Get(tools.ID(tool))
	if err != nil || !desc.Idempotent {
		return ""
	}
	return resultcache.Key(tool, input)
}

func (s *Service) record(ctx context.Context, event audit.Event) {
	if s.Audit != nil {
		s.Audit.Record(ctx, event)
	}
}

func newCorrelationID() string {
	return "corr-" + uuid.NewString()
}

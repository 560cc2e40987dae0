package dsl

import (
	"fmt"
	"strings"
	"time"

	"github.com/codex-k8s/devterm-mcp-server/internal/constants"
	"github.com/codex-k8s/devterm-mcp-server/internal/timeutil"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if cfg.Server.Version == "" {
		return fmt.Errorf("server.version is required")
	}
	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case "":
		cfg.Server.Transport = constants.TransportHTTP
	case constants.TransportHTTP, constants.TransportStdio:
	default:
		return fmt.Errorf("server.transport must be http or stdio")
	}
	if strings.TrimSpace(cfg.Server.HTTP.Listen) == "" {
		cfg.Server.HTTP.Listen = ":8080"
	}
	if cfg.Server.HTTP.Path == "" {
		cfg.Server.HTTP.Path = "/mcp"
	}
	if !strings.HasPrefix(cfg.Server.HTTP.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	if cfg.Server.HTTP.Path == "/api" || strings.HasPrefix(cfg.Server.HTTP.Path, "/api/") {
		return fmt.Errorf("server.http.path must not overlap /api/")
	}
	for name, value := range map[string]string{
		"server.shutdown_timeout":   cfg.Server.ShutdownTimeout,
		"server.http.read_timeout":  cfg.Server.HTTP.ReadTimeout,
		"server.http.write_timeout": cfg.Server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  cfg.Server.HTTP.IdleTimeout,
	} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s is invalid: %w", name, err)
		}
	}

	if cfg.Server.ResultCache.Enabled {
		if cfg.Server.ResultCache.TTL == "" {
			cfg.Server.ResultCache.TTL = "1h"
		}
		if cfg.Server.ResultCache.MaxEntries == 0 {
			cfg.Server.ResultCache.MaxEntries = 1000
		}
		if cfg.Server.ResultCache.MaxEntries < 0 {
			return fmt.Errorf("server.result_cache.max_entries must be >= 0")
		}
		if _, err := timeutil.ParsePositive(cfg.Server.ResultCache.TTL); err != nil {
			return fmt.Errorf("server.result_cache.ttl is invalid: %w", err)
		}
	}

	if cfg.QR.BoxSize < 0 {
		return fmt.Errorf("qr.box_size must be >= 0")
	}
	if _, err := tools.ParseQRLevel(cfg.QR.ErrorCorrection); err != nil {
		return fmt.Errorf("qr.error_correction: %w", err)
	}

	toolIDs := map[string]struct{}{}
	for i, tool := range cfg.Tools {
		if tool.ID == "" {
			return fmt.Errorf("tools[%d].id is required", i)
		}
		if !tools.IsKnown(tools.ID(tool.ID)) {
			return fmt.Errorf("tools[%d].id: unknown tool %s", i, tool.ID)
		}
		if _, exists := toolIDs[tool.ID]; exists {
			return fmt.Errorf("duplicate tool id: %s", tool.ID)
		}
		toolIDs[tool.ID] = struct{}{}
		if tool.RatePerMinute < 0 || tool.MaxTotal < 0 || tool.MaxInputLength < 0 {
			return fmt.Errorf("tools[%d]: limits must be >= 0", i)
		}
	}

	resourceURIs := map[string]struct{}{constants.CatalogURI: {}}
	for i, res := range cfg.Resources {
		if res.URI == "" {
			return fmt.Errorf("resources[%d].uri is required", i)
		}
		if _, exists := resourceURIs[res.URI]; exists {
			return fmt.Errorf("duplicate resource uri: %s", res.URI)
		}
		resourceURIs[res.URI] = struct{}{}
	}

	return nil
}

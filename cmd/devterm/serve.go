package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/codex-k8s/devterm-mcp-server/configs"
	"github.com/codex-k8s/devterm-mcp-server/internal/app"
	"github.com/codex-k8s/devterm-mcp-server/internal/audit"
	"github.com/codex-k8s/devterm-mcp-server/internal/config"
	"github.com/codex-k8s/devterm-mcp-server/internal/constants"
	"github.com/codex-k8s/devterm-mcp-server/internal/dsl"
	"github.com/codex-k8s/devterm-mcp-server/internal/http/api"
	"github.com/codex-k8s/devterm-mcp-server/internal/log"
	"github.com/codex-k8s/devterm-mcp-server/internal/render"
	"github.com/codex-k8s/devterm-mcp-server/internal/runtime"
	"github.com/codex-k8s/devterm-mcp-server/internal/templates"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

func newServeCommand() *cobra.Command {
	var embeddedConfig string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tools over MCP (stdio or HTTP) and the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(commandContext(cmd), embeddedConfig)
		},
	}
	cmd.Flags().StringVar(&embeddedConfig, "embedded-config", "", "use embedded config from configs/ (e.g. "+configs.Default+")")
	return cmd
}

func serve(ctx context.Context, embeddedConfig string) error {
	envCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := log.New(envCfg.LogLevel, os.Stderr)

	dslCfg, err := loadServerConfig(envCfg, embeddedConfig)
	if err != nil {
		logger.Error("load config failed", "error", err)
		return err
	}

	bundle, err := templates.Load()
	if err != nil {
		logger.Error("load templates failed", "error", err)
		return err
	}

	qrDir := dslCfg.QR.OutputDir
	if envCfg.QRDir != "" {
		qrDir = envCfg.QRDir
	}
	registry := tools.NewRegistry(tools.Options{
		QR: tools.QRWriter{
			Dir:     qrDir,
			BoxSize: dslCfg.QR.BoxSize,
			Level:   dslCfg.QR.ErrorCorrection,
		},
		Messages: bundle,
	})

	service, err := runtime.NewService(dslCfg, registry, logger, audit.New(logger), bundle)
	if err != nil {
		logger.Error("build service failed", "error", err)
		return err
	}
	server, err := runtime.Builder{Service: service}.Build(dslCfg)
	if err != nil {
		logger.Error("build server failed", "error", err)
		return err
	}

	baseCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("shutdown requested", "signal", sig.String())
			cancel()
		case <-baseCtx.Done():
		}
	}()

	logger.Info("serving tools", "transport", dslCfg.Server.Transport, "tools", len(service.Catalog.List()))
	switch dslCfg.Server.Transport {
	case constants.TransportStdio:
		err = runStdio(baseCtx, server)
	default:
		err = runHTTP(baseCtx, envCfg, dslCfg, server, service, logger)
	}
	if err != nil {
		logger.Error("runtime error", "error", err)
	}
	return err
}

func loadServerConfig(envCfg config.Config, embeddedConfig string) (*dsl.Config, error) {
	var (
		rendered []byte
		err      error
	)
	if embeddedConfig != "" {
		raw, loadErr := configs.Load(embeddedConfig)
		if loadErr != nil {
			return nil, loadErr
		}
		rendered, err = render.RenderBytes(embeddedConfig, raw)
	} else {
		rendered, err = render.RenderFile(envCfg.ConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return dsl.Load(rendered)
}

func runStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func runHTTP(ctx context.Context, envCfg config.Config, dslCfg *dsl.Config, server *mcp.Server, service *runtime.Service, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: dslCfg.Server.HTTP.Stateless,
	})

	extra := map[string]http.Handler{}
	if dslCfg.Server.HTTP.APIEnabled() {
		extra[api.Prefix] = api.NewRouter(service, logger)
	}

	application, err := app.New(ctx, dslCfg.Server, handler, extra, logger, envCfg.ShutdownTimeout)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}

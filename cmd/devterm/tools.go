package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/devterm-mcp-server/internal/config"
	"github.com/codex-k8s/devterm-mcp-server/internal/dispatch"
	"github.com/codex-k8s/devterm-mcp-server/internal/templates"
	"github.com/codex-k8s/devterm-mcp-server/internal/tools"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, desc := range tools.NewRegistry(tools.Options{}).List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", desc.ID, desc.DisplayName, desc.Title)
			}
			return w.Flush()
		},
	}
}

func newRunCommand() *cobra.Command {
	var qrDir string
	cmd := &cobra.Command{
		Use:   "run <tool> [input...]",
		Short: "Run one tool; input comes from the arguments or stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if qrDir == "" {
				envCfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				qrDir = envCfg.QRDir
			}
			bundle, err := templates.Load()
			if err != nil {
				return err
			}
			registry := tools.NewRegistry(tools.Options{QR: tools.QRWriter{Dir: qrDir}, Messages: bundle})

			var input string
			if desc, err := registry.Get(tools.ID(args[0])); err == nil && !desc.IgnoresInput {
				input, err = readInput(cmd.InOrStdin(), args[1:])
				if err != nil {
					return err
				}
			}

			res := dispatch.New(registry).Execute(commandContext(cmd), tools.ID(args[0]), input)
			if res.Output != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			}
			if !res.Success {
				return errToolFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&qrDir, "qr-dir", "", "directory for QR images (default $DEVTERM_QR_DIR or the temp dir)")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if stdin == nil {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

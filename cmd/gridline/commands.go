package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/hylla/gridline/internal/adapters/server"
	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/hylla/gridline/internal/config"
	"github.com/hylla/gridline/internal/grid"
	"github.com/hylla/gridline/internal/tui"
	"github.com/spf13/cobra"
)

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the order grid in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), opts)
		},
	}
}

// runConsole runs the TUI until the user quits, then drains pending layout saves.
func runConsole(_ context.Context, opts *rootOptions) (err error) {
	rt, err := openRuntime(opts, "console")
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close runtime: %w", closeErr)
		}
	}()

	gridCfg, err := toTUIGridConfig(rt.cfg.Grid, rt.cfg.Layout.ViewID)
	if err != nil {
		return err
	}
	m := tui.NewModel(
		tui.WithGridConfig(gridCfg),
		tui.WithLayoutStore(rt.layouts),
		tui.WithLogger(rt.logger),
	)
	rt.logger.Info("starting tui program loop", "view_id", gridCfg.ViewID, "data_mode", gridCfg.Mode)
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "console")
	return nil
}

// toTUIGridConfig maps persisted grid settings into model options.
func toTUIGridConfig(cfg config.GridConfig, viewID string) (tui.GridConfig, error) {
	mode, ok := grid.ParseDataMode(cfg.DataMode)
	if !ok {
		return tui.GridConfig{}, fmt.Errorf("unknown grid.data_mode %q", cfg.DataMode)
	}
	return tui.GridConfig{
		ViewID:             viewID,
		Mode:               mode,
		HistoryCap:         cfg.ClickHistoryCap,
		SinglePrimaryClick: cfg.SinglePrimaryClick,
		SuppressedColumns:  append([]string(nil), cfg.SuppressedColumns...),
		Assertions:         cfg.Assertions,
	}, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var httpBind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout REST and MCP endpoints",
		Long: `serve exposes the layout store over HTTP: /api/v1/layouts for hosts that keep
layouts remotely, /mcp for automation clients, and /healthz plus /readyz health checks.

Example:
  gridline serve
  gridline serve --http 0.0.0.0:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			rt, err := openRuntime(opts, "serve")
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := rt.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("close runtime: %w", closeErr)
				}
			}()

			cfg := server.Config{
				HTTPBind:      firstNonEmpty(httpBind, rt.cfg.Server.HTTPBind),
				APIEndpoint:   rt.cfg.Server.APIEndpoint,
				MCPEndpoint:   rt.cfg.Server.MCPEndpoint,
				ServerName:    "gridline",
				ServerVersion: version,
			}
			rt.logger.Info("serving layout endpoints", "http_bind", cfg.HTTPBind, "api", cfg.APIEndpoint, "mcp", cfg.MCPEndpoint)
			if err := server.Run(cmd.Context(), cfg, server.Dependencies{
				Layouts:   common.NewAppServiceAdapter(rt.layouts),
				Readiness: rt.readiness,
				Listening: func(addr string) {
					rt.logger.Info("listening", "addr", addr)
				},
			}); err != nil {
				rt.logger.Error("server stopped with error", "err", err)
				return fmt.Errorf("run server: %w", err)
			}
			rt.logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "listen address, overrides server.http_bind")
	return cmd
}

func newLayoutCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and reset saved column layouts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <view-id>",
			Short: "Print the saved layout for a view as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLayouts(cmd, opts, func(ctx context.Context, svc common.LayoutService) error {
					doc, err := svc.GetLayout(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), doc)
				})
			},
		},
		&cobra.Command{
			Use:   "reset <view-id>",
			Short: "Remove the saved layout for a view",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLayouts(cmd, opts, func(ctx context.Context, svc common.LayoutService) error {
					if err := svc.ResetLayout(ctx, args[0]); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", strings.TrimSpace(args[0]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List views with a saved layout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withLayouts(cmd, opts, func(ctx context.Context, svc common.LayoutService) error {
					docs, err := svc.ListLayouts(ctx)
					if err != nil {
						return err
					}
					return printLayoutTable(cmd.OutOrStdout(), docs)
				})
			},
		},
	)
	return cmd
}

// withLayouts opens the runtime for one layout subcommand and closes it afterwards.
func withLayouts(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, common.LayoutService) error) (err error) {
	rt, err := openRuntime(opts, "layout "+cmd.Name())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close runtime: %w", closeErr)
		}
	}()
	if err := fn(cmd.Context(), common.NewAppServiceAdapter(rt.layouts)); err != nil {
		rt.logger.Error("command flow failed", "command", "layout "+cmd.Name(), "err", err)
		return fmt.Errorf("layout %s: %w", cmd.Name(), err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printLayoutTable renders saved layouts as a bordered table.
func printLayoutTable(w io.Writer, docs []common.LayoutDocument) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "no saved layouts")
		return err
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{doc.ViewID, strconv.Itoa(doc.Columns), doc.UpdatedAt.Format(time.RFC3339)})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("VIEW", "COLUMNS", "UPDATED").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

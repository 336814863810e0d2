// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the layout tools.
func NewHandler(cfg Config, layouts common.LayoutService) (*Handler, error) {
	if layouts == nil {
		return nil, fmt.Errorf("layout service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerLayoutTools(mcpSrv, layouts)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "gridline"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerLayoutTools registers the get/save/reset/list layout tools.
func registerLayoutTools(srv *mcpserver.MCPServer, layouts common.LayoutService) {
	srv.AddTool(
		mcp.NewTool(
			"gridline.get_layout",
			mcp.WithDescription("Return the saved column layout for one grid view."),
			mcp.WithString("view_id", mcp.Required(), mcp.Description("Grid view identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			viewID, err := req.RequireString("view_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			doc, err := layouts.GetLayout(ctx, viewID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(doc)
			if err != nil {
				return nil, fmt.Errorf("encode get_layout result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"gridline.save_layout",
			mcp.WithDescription("Replace the saved column layout for one grid view."),
			mcp.WithString("view_id", mcp.Required(), mcp.Description("Grid view identifier")),
			mcp.WithString("column_state", mcp.Required(), mcp.Description(`JSON array of {"field","width","order","visible"} entries`)),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			viewID, err := req.RequireString("view_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			state, err := req.RequireString("column_state")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			doc, err := layouts.SaveLayout(ctx, common.SaveLayoutRequest{ViewID: viewID, ColumnState: state})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(doc)
			if err != nil {
				return nil, fmt.Errorf("encode save_layout result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"gridline.reset_layout",
			mcp.WithDescription("Clear the saved column layout so the view reverts to its default schema."),
			mcp.WithString("view_id", mcp.Required(), mcp.Description("Grid view identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			viewID, err := req.RequireString("view_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := layouts.ResetLayout(ctx, viewID); err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"viewId": viewID,
				"reset":  true,
			})
			if err != nil {
				return nil, fmt.Errorf("encode reset_layout result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"gridline.list_layouts",
			mcp.WithDescription("List every saved grid view layout."),
		),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			docs, err := layouts.ListLayouts(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{
				"layouts": docs,
			})
			if err != nil {
				return nil, fmt.Errorf("encode list_layouts result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrInvalidLayoutRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrLayoutUnavailable):
		return mcp.NewToolResultError("service_unavailable: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}

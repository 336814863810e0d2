// Package server mounts the layout REST API, the layout MCP tools and the health check endpoints on one listener.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/hylla/gridline/internal/adapters/server/httpapi"
	"github.com/hylla/gridline/internal/adapters/server/mcpapi"
)

// Serve defaults.
const (
	defaultBindAddress     = "127.0.0.1:8080"
	defaultAPIEndpoint     = "/api/v1"
	defaultMCPEndpoint     = "/mcp"
	defaultShutdownTimeout = 5 * time.Second
	readinessTimeout       = 2 * time.Second
)

// Health check paths are fixed; configured endpoints may not shadow them.
const (
	healthPath    = "/healthz"
	readinessPath = "/readyz"
)

// ErrMissingLayouts and related errors describe invalid serve wiring.
var (
	ErrMissingLayouts    = errors.New("layout service dependency is required")
	ErrEndpointCollision = errors.New("endpoint collision")
)

// Config defines serve-mode endpoint configuration.
type Config struct {
	HTTPBind      string
	APIEndpoint   string
	MCPEndpoint   string
	ServerName    string
	ServerVersion string
}

// Dependencies are the app-facing adapters the transports serve.
type Dependencies struct {
	Layouts common.LayoutService
	// Readiness gates /readyz. Nil reports ready whenever the process is up.
	Readiness common.ReadinessChecker
	// Listening is called with the bound address once the listener is open.
	Listening func(addr string)
}

// route is one entry of the root mux. Prefix routes are mounted with and without the trailing slash
// and see paths relative to pattern.
type route struct {
	pattern string
	prefix  bool
	handler http.Handler
}

// NewHandler validates cfg and deps and builds the root mux.
func NewHandler(cfg Config, deps Dependencies) (http.Handler, Config, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, Config{}, err
	}
	table, err := routes(cfg, deps)
	if err != nil {
		return nil, Config{}, err
	}
	mux := http.NewServeMux()
	for _, rt := range table {
		if !rt.prefix {
			mux.Handle(rt.pattern, rt.handler)
			continue
		}
		stripped := http.StripPrefix(rt.pattern, rt.handler)
		mux.Handle(rt.pattern, stripped)
		mux.Handle(rt.pattern+"/", stripped)
	}
	return mux, cfg, nil
}

// routes lists every mounted endpoint for a normalized config.
func routes(cfg Config, deps Dependencies) ([]route, error) {
	if deps.Layouts == nil {
		return nil, ErrMissingLayouts
	}
	tools, err := mcpapi.NewHandler(mcpapi.Config{
		ServerName:    cfg.ServerName,
		ServerVersion: cfg.ServerVersion,
		EndpointPath:  cfg.MCPEndpoint,
	}, deps.Layouts)
	if err != nil {
		return nil, fmt.Errorf("configure mcp handler: %w", err)
	}
	return []route{
		{pattern: healthPath, handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeStatus(w, http.StatusOK, "ok", nil)
		})},
		{pattern: readinessPath, handler: readinessHandler(deps.Readiness)},
		{pattern: cfg.APIEndpoint, prefix: true, handler: httpapi.NewHandler(deps.Layouts)},
		{pattern: cfg.MCPEndpoint, handler: tools},
	}, nil
}

// Run serves until ctx is done, then drains in-flight requests for up to defaultShutdownTimeout.
func Run(ctx context.Context, cfg Config, deps Dependencies) error {
	if ctx == nil {
		ctx = context.Background()
	}
	handler, cfg, err := NewHandler(cfg, deps)
	if err != nil {
		return fmt.Errorf("build server handler: %w", err)
	}
	ln, err := net.Listen("tcp", cfg.HTTPBind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTPBind, err)
	}
	if deps.Listening != nil {
		deps.Listening(ln.Addr().String())
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ln)
	}()

	select {
	case err := <-served:
		return serveResult(err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return serveResult(<-served)
}

// serveResult treats a closed server as a clean stop.
func serveResult(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serve: %w", err)
}

// normalizeConfig applies defaults and rejects endpoints that would shadow each other.
func normalizeConfig(cfg Config) (Config, error) {
	cfg.HTTPBind = strings.TrimSpace(cfg.HTTPBind)
	if cfg.HTTPBind == "" {
		cfg.HTTPBind = defaultBindAddress
	}
	cfg.APIEndpoint = normalizeEndpoint(cfg.APIEndpoint, defaultAPIEndpoint)
	cfg.MCPEndpoint = normalizeEndpoint(cfg.MCPEndpoint, defaultMCPEndpoint)

	endpoints := map[string]string{"api": cfg.APIEndpoint, "mcp": cfg.MCPEndpoint}
	for name, path := range endpoints {
		if path == healthPath || path == readinessPath {
			return Config{}, fmt.Errorf("%s endpoint %q shadows a health check path: %w", name, path, ErrEndpointCollision)
		}
	}
	if nested(cfg.APIEndpoint, cfg.MCPEndpoint) || nested(cfg.MCPEndpoint, cfg.APIEndpoint) {
		return Config{}, fmt.Errorf("api %q and mcp %q overlap: %w", cfg.APIEndpoint, cfg.MCPEndpoint, ErrEndpointCollision)
	}

	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "gridline"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	return cfg, nil
}

// nested reports whether inner equals outer or lives under it.
func nested(outer, inner string) bool {
	return inner == outer || strings.HasPrefix(inner, outer+"/")
}

// normalizeEndpoint canonicalizes one endpoint path to a single leading slash and no trailing slash.
func normalizeEndpoint(path, fallback string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return fallback
	}
	return "/" + path
}

// readinessHandler reports ready only when the checker's Ping succeeds.
func readinessHandler(checker common.ReadinessChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			writeStatus(w, http.StatusOK, "ok", nil)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := checker.Ping(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "unavailable", err)
			return
		}
		writeStatus(w, http.StatusOK, "ok", nil)
	})
}

// statusBody is the health check payload.
type statusBody struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := statusBody{Status: status}
	if err != nil {
		body.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

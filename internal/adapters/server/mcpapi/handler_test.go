package mcpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubLayoutService provides deterministic layout responses for MCP tool tests.
type stubLayoutService struct {
	doc       common.LayoutDocument
	docs      []common.LayoutDocument
	err       error
	lastGet   string
	lastSave  common.SaveLayoutRequest
	lastReset string
}

// GetLayout records the view and returns the fixture document.
func (s *stubLayoutService) GetLayout(_ context.Context, viewID string) (common.LayoutDocument, error) {
	s.lastGet = viewID
	if s.err != nil {
		return common.LayoutDocument{}, s.err
	}
	return s.doc, nil
}

// SaveLayout records the request and returns the fixture document.
func (s *stubLayoutService) SaveLayout(_ context.Context, req common.SaveLayoutRequest) (common.LayoutDocument, error) {
	s.lastSave = req
	if s.err != nil {
		return common.LayoutDocument{}, s.err
	}
	return s.doc, nil
}

// ResetLayout records the view.
func (s *stubLayoutService) ResetLayout(_ context.Context, viewID string) error {
	s.lastReset = viewID
	return s.err
}

// ListLayouts returns the fixture documents.
func (s *stubLayoutService) ListLayouts(context.Context) ([]common.LayoutDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]common.LayoutDocument(nil), s.docs...), nil
}

// jsonRPCResponse models minimal JSON-RPC response fields used in MCP adapter tests.
type jsonRPCResponse struct {
	ID     float64        `json:"id"`
	Result map[string]any `json:"result"`
}

// callToolRequest constructs one deterministic tools/call JSON-RPC request payload.
func callToolRequest(id int, toolName string, arguments map[string]any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      toolName,
			"arguments": arguments,
		},
	}
}

// toolResultText decodes the first text entry from one tool-call result payload.
func toolResultText(t *testing.T, result map[string]any) string {
	t.Helper()

	contentRaw, ok := result["content"].([]any)
	if !ok || len(contentRaw) == 0 {
		t.Fatalf("content missing in tool result: %#v", result)
	}
	first, ok := contentRaw[0].(map[string]any)
	if !ok {
		t.Fatalf("first content entry has unexpected type: %#v", contentRaw[0])
	}
	text, ok := first["text"].(string)
	if !ok {
		t.Fatalf("content text missing in tool result: %#v", first)
	}
	return text
}

// toolResultStructured decodes structuredContent as one map for stable assertions.
func toolResultStructured(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	structured, ok := result["structuredContent"].(map[string]any)
	if !ok {
		t.Fatalf("structuredContent missing in tool result: %#v", result)
	}
	return structured
}

// postJSONRPC sends one JSON-RPC payload and decodes the response body.
func postJSONRPC(t *testing.T, client *http.Client, url string, payload any) (*http.Response, jsonRPCResponse) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	var decoded jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return resp, decoded
}

// initializeRequest builds a deterministic MCP initialize request payload.
func initializeRequest() map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
			"clientInfo": map[string]any{
				"name":    "gridline-test",
				"version": "1.0.0",
			},
		},
	}
}

// callToolResultText decodes the first textual content block from a CallToolResult.
func callToolResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatalf("result = nil, want non-nil")
	}
	if len(result.Content) == 0 {
		t.Fatalf("result content is empty")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] has unexpected type %T", result.Content[0])
	}
	return text.Text
}

// newTestServer starts one MCP test server over svc and runs initialize.
func newTestServer(t *testing.T, svc common.LayoutService) *httptest.Server {
	t.Helper()
	handler, err := NewHandler(Config{}, svc)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	_, _ = postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	return server
}

// TestHandlerUsesStatelessTransport verifies MCP transport does not issue session ids.
func TestHandlerUsesStatelessTransport(t *testing.T) {
	handler, err := NewHandler(Config{}, &stubLayoutService{})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, decoded := postJSONRPC(t, server.Client(), server.URL, initializeRequest())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if decoded.ID != 1 {
		t.Fatalf("id = %v, want 1", decoded.ID)
	}
	if got := resp.Header.Get("Mcp-Session-Id"); got != "" {
		t.Fatalf("Mcp-Session-Id header = %q, want empty (stateless transport)", got)
	}
}

// TestHandlerRegistersLayoutTools verifies MCP tool discovery lists every layout tool.
func TestHandlerRegistersLayoutTools(t *testing.T) {
	server := newTestServer(t, &stubLayoutService{})
	_, toolsResp := postJSONRPC(t, server.Client(), server.URL, map[string]any{
		"jsonrpc": "2.0",
		"id":      2,
		"method":  "tools/list",
	})

	toolsRaw, ok := toolsResp.Result["tools"].([]any)
	if !ok {
		t.Fatalf("tools list payload missing tools: %#v", toolsResp.Result)
	}
	toolNames := make([]string, 0, len(toolsRaw))
	for _, toolRaw := range toolsRaw {
		toolMap, ok := toolRaw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := toolMap["name"].(string)
		toolNames = append(toolNames, name)
	}
	for _, want := range []string{
		"gridline.get_layout",
		"gridline.save_layout",
		"gridline.reset_layout",
		"gridline.list_layouts",
	} {
		if !slices.Contains(toolNames, want) {
			t.Fatalf("tool list missing %s: %#v", want, toolNames)
		}
	}
}

// TestHandlerGetLayoutToolCall verifies get_layout forwards the view id and returns the document.
func TestHandlerGetLayoutToolCall(t *testing.T) {
	now := time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC)
	svc := &stubLayoutService{doc: common.LayoutDocument{
		ViewID:      "orders",
		ColumnState: `[{"field":"sku","order":0,"visible":true}]`,
		Columns:     1,
		UpdatedAt:   now,
	}}
	server := newTestServer(t, svc)

	_, resp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(3, "gridline.get_layout", map[string]any{
		"view_id": "orders",
	}))
	got := toolResultStructured(t, resp.Result)
	if got["viewId"] != "orders" {
		t.Fatalf("viewId = %v, want orders", got["viewId"])
	}
	if got["columnState"] != svc.doc.ColumnState {
		t.Fatalf("columnState = %v", got["columnState"])
	}
	if svc.lastGet != "orders" {
		t.Fatalf("view = %q, want orders", svc.lastGet)
	}
}

// TestHandlerSaveLayoutToolCall verifies save_layout maps arguments into the save request.
func TestHandlerSaveLayoutToolCall(t *testing.T) {
	svc := &stubLayoutService{doc: common.LayoutDocument{ViewID: "orders", Columns: 2}}
	server := newTestServer(t, svc)

	state := `[{"field":"sku","order":0,"visible":true},{"field":"qty","order":1,"visible":false}]`
	_, resp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(3, "gridline.save_layout", map[string]any{
		"view_id":      "orders",
		"column_state": state,
	}))
	got := toolResultStructured(t, resp.Result)
	if cols, _ := got["columns"].(float64); cols != 2 {
		t.Fatalf("columns = %v, want 2", got["columns"])
	}
	if svc.lastSave.ViewID != "orders" || svc.lastSave.ColumnState != state {
		t.Fatalf("save request = %+v", svc.lastSave)
	}
}

// TestHandlerResetAndListToolCalls verifies reset_layout and list_layouts envelopes.
func TestHandlerResetAndListToolCalls(t *testing.T) {
	svc := &stubLayoutService{docs: []common.LayoutDocument{{ViewID: "inbound"}, {ViewID: "orders"}}}
	server := newTestServer(t, svc)

	_, resetResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(3, "gridline.reset_layout", map[string]any{
		"view_id": "orders",
	}))
	reset := toolResultStructured(t, resetResp.Result)
	if ok, _ := reset["reset"].(bool); !ok {
		t.Fatalf("reset = %v, want true", reset["reset"])
	}
	if svc.lastReset != "orders" {
		t.Fatalf("reset view = %q, want orders", svc.lastReset)
	}

	_, listResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(4, "gridline.list_layouts", map[string]any{}))
	list := toolResultStructured(t, listResp.Result)
	layouts, ok := list["layouts"].([]any)
	if !ok || len(layouts) != 2 {
		t.Fatalf("layouts = %#v, want 2 rows", list["layouts"])
	}
}

// TestHandlerToolCallErrorPaths verifies required-arg and mapped-service errors.
func TestHandlerToolCallErrorPaths(t *testing.T) {
	svc := &stubLayoutService{err: errors.Join(common.ErrNotFound, errors.New("missing"))}
	server := newTestServer(t, svc)

	_, missingArgResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(2, "gridline.get_layout", map[string]any{}))
	if isError, _ := missingArgResp.Result["isError"].(bool); !isError {
		t.Fatalf("isError = %v, want true", missingArgResp.Result["isError"])
	}
	if got := toolResultText(t, missingArgResp.Result); !strings.Contains(got, `required argument "view_id" not found`) {
		t.Fatalf("error text = %q, want required view_id message", got)
	}

	_, missingStateResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(3, "gridline.save_layout", map[string]any{
		"view_id": "orders",
	}))
	if got := toolResultText(t, missingStateResp.Result); !strings.Contains(got, `required argument "column_state" not found`) {
		t.Fatalf("error text = %q, want required column_state message", got)
	}

	_, mappedErrResp := postJSONRPC(t, server.Client(), server.URL, callToolRequest(4, "gridline.get_layout", map[string]any{
		"view_id": "orders",
	}))
	if isError, _ := mappedErrResp.Result["isError"].(bool); !isError {
		t.Fatalf("isError = %v, want true", mappedErrResp.Result["isError"])
	}
	if got := toolResultText(t, mappedErrResp.Result); !strings.HasPrefix(got, "not_found:") {
		t.Fatalf("error text = %q, want prefix not_found:", got)
	}
}

// TestNewHandlerRequiresLayoutService verifies dependency enforcement.
func TestNewHandlerRequiresLayoutService(t *testing.T) {
	handler, err := NewHandler(Config{}, nil)
	if err == nil {
		t.Fatalf("NewHandler() error = nil, want non-nil")
	}
	if handler != nil {
		t.Fatalf("handler = %#v, want nil", handler)
	}
}

// TestNormalizeConfig verifies deterministic config defaults and path normalization.
func TestNormalizeConfig(t *testing.T) {
	cases := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "defaults",
			in:   Config{},
			want: Config{
				ServerName:    "gridline",
				ServerVersion: "dev",
				EndpointPath:  "/mcp",
			},
		},
		{
			name: "trimmed values and slash prefix",
			in: Config{
				ServerName:    " gridline-server ",
				ServerVersion: " v1.2.3 ",
				EndpointPath:  "custom/path",
			},
			want: Config{
				ServerName:    "gridline-server",
				ServerVersion: "v1.2.3",
				EndpointPath:  "/custom/path",
			},
		},
		{
			name: "endpoint trim of repeated slashes",
			in: Config{
				ServerName:    "gridline",
				ServerVersion: "dev",
				EndpointPath:  "///mcp///",
			},
			want: Config{
				ServerName:    "gridline",
				ServerVersion: "dev",
				EndpointPath:  "/mcp",
			},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeConfig(tt.in)
			if got != tt.want {
				t.Fatalf("normalizeConfig() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// TestHandlerServeHTTPUnavailable verifies nil handler paths fail closed with 503.
func TestHandlerServeHTTPUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler *Handler
	}{
		{name: "nil receiver", handler: nil},
		{name: "missing inner http handler", handler: &Handler{}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(`{}`))
			rec := httptest.NewRecorder()

			tt.handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusServiceUnavailable {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
			}
			if !strings.Contains(rec.Body.String(), "mcp handler unavailable") {
				t.Fatalf("body = %q, want unavailable message", rec.Body.String())
			}
		})
	}
}

// TestToolResultFromErrorMapping verifies transport sentinels map to stable prefixes.
func TestToolResultFromErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantPrefix string
	}{
		{name: "nil error", err: nil, wantPrefix: "unknown error"},
		{name: "invalid request", err: errors.Join(common.ErrInvalidLayoutRequest, errors.New("bad")), wantPrefix: "invalid_request:"},
		{name: "not found", err: errors.Join(common.ErrNotFound, errors.New("missing")), wantPrefix: "not_found:"},
		{name: "unavailable", err: errors.Join(common.ErrLayoutUnavailable, errors.New("no repo")), wantPrefix: "service_unavailable:"},
		{name: "internal", err: errors.New("boom"), wantPrefix: "internal_error:"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			result := toolResultFromError(tt.err)
			if !result.IsError {
				t.Fatalf("IsError = false, want true")
			}
			if got := callToolResultText(t, result); !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("text = %q, want prefix %q", got, tt.wantPrefix)
			}
		})
	}
}

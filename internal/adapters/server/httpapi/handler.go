// Package httpapi provides the REST HTTP adapter for the server surfaces.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hylla/gridline/internal/adapters/server/common"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// layoutsPath is the collection route for persisted layouts.
const layoutsPath = "layouts"

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	layouts common.LayoutService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs one HTTP API adapter over a layout service.
func NewHandler(layouts common.LayoutService) *Handler {
	return &Handler{layouts: layouts}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := normalizePath(r.URL.EscapedPath())
	if path == layoutsPath {
		if r.Method != http.MethodGet {
			writeMethodNotAllowed(w, http.MethodGet)
			return
		}
		h.handleListLayouts(w, r)
		return
	}
	viewID, ok := resolveViewID(path)
	if !ok {
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "endpoint not found",
		})
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGetLayout(w, r, viewID)
	case http.MethodPost, http.MethodPut:
		h.handleSaveLayout(w, r, viewID)
	case http.MethodDelete:
		h.handleResetLayout(w, r, viewID)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

// handleListLayouts serves GET `/layouts`.
func (h *Handler) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	docs, err := h.layouts.ListLayouts(r.Context())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"layouts": docs,
	})
}

// handleGetLayout serves GET `/layouts/{viewId}`.
func (h *Handler) handleGetLayout(w http.ResponseWriter, r *http.Request, viewID string) {
	if !h.available(w) {
		return
	}
	doc, err := h.layouts.GetLayout(r.Context(), viewID)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleSaveLayout serves POST `/layouts/{viewId}`.
func (h *Handler) handleSaveLayout(w http.ResponseWriter, r *http.Request, viewID string) {
	if !h.available(w) {
		return
	}
	var req common.SaveLayoutRequest
	if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	if body := strings.TrimSpace(req.ViewID); body != "" && body != viewID {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: "body viewId does not match the request path",
			Context: map[string]any{"path_view_id": viewID, "body_view_id": body},
		})
		return
	}
	req.ViewID = viewID
	doc, err := h.layouts.SaveLayout(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleResetLayout serves DELETE `/layouts/{viewId}`.
func (h *Handler) handleResetLayout(w http.ResponseWriter, r *http.Request, viewID string) {
	if !h.available(w) {
		return
	}
	if err := h.layouts.ResetLayout(r.Context(), viewID); err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"viewId": viewID,
		"reset":  true,
	})
}

// available writes a 503 when no layout service is configured.
func (h *Handler) available(w http.ResponseWriter) bool {
	if h.layouts != nil {
		return true
	}
	writeJSONError(w, http.StatusServiceUnavailable, APIError{
		Code:    "service_unavailable",
		Message: "layout service is not configured",
	})
	return false
}

// resolveViewID parses `/layouts/{viewId}` and returns the unescaped `{viewId}`.
func resolveViewID(path string) (string, bool) {
	const prefix = layoutsPath + "/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return "", false
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	return id, true
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps adapter errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, common.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: err.Error(),
			Hint:    "No layout is saved for this view; clients fall back to their default schema.",
		})
	case errors.Is(err, common.ErrInvalidLayoutRequest):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, common.ErrLayoutUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: err.Error(),
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes one required JSON request body with strict shape checks.
func decodeJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", errors.Join(common.ErrInvalidLayoutRequest, err))
	}
	// Reject trailing payloads so malformed JSON bodies fail closed.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: trailing content: %w", common.ErrInvalidLayoutRequest)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	default:
		return nil
	}
}

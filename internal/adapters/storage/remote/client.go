// Package remote provides a LayoutRepository backed by the gridline REST layout API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hylla/gridline/internal/app"
	"github.com/hylla/gridline/internal/domain"
)

// maxResponseBytes limits decoded response payload size.
const maxResponseBytes int64 = 1 << 20

// ErrInvalidBaseURL reports an unusable remote endpoint.
var ErrInvalidBaseURL = errors.New("invalid remote base url")

// Repository talks to `/layouts/{viewId}` on one REST backend.
type Repository struct {
	base   *url.URL
	client *http.Client
}

// Option customizes one Repository.
type Option func(*Repository)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Repository) {
		if client != nil {
			r.client = client
		}
	}
}

// layoutDocument mirrors the REST layout payload. Only columnState is required; viewId and updatedAt
// are filled in by backends that echo them.
type layoutDocument struct {
	ViewID      string    `json:"viewId,omitempty"`
	ColumnState string    `json:"columnState"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// listDocument mirrors the REST list payload.
type listDocument struct {
	Layouts []layoutDocument `json:"layouts"`
}

// errorEnvelope mirrors the REST error payload.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// New builds a repository rooted at baseURL, e.g. `http://127.0.0.1:8080/api/v1`.
func New(baseURL string, opts ...Option) (*Repository, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("remote url is required: %w", ErrInvalidBaseURL)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", errors.Join(ErrInvalidBaseURL, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote url scheme %q: %w", u.Scheme, ErrInvalidBaseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	r := &Repository{base: u, client: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// GetLayout fetches one layout; a 404 maps to app.ErrNotFound.
func (r *Repository) GetLayout(ctx context.Context, viewID string) (domain.ColumnLayout, error) {
	var doc layoutDocument
	if err := r.do(ctx, http.MethodGet, r.layoutURL(viewID), nil, &doc); err != nil {
		return domain.ColumnLayout{}, err
	}
	return toColumnLayout(doc, viewID)
}

// SaveLayout posts the encoded column state for one view.
func (r *Repository) SaveLayout(ctx context.Context, layout domain.ColumnLayout) error {
	state, err := domain.EncodeColumnState(layout.Columns)
	if err != nil {
		return err
	}
	body, err := json.Marshal(map[string]string{"columnState": state})
	if err != nil {
		return fmt.Errorf("encode save request: %w", err)
	}
	return r.do(ctx, http.MethodPost, r.layoutURL(layout.ViewID), body, nil)
}

// DeleteLayout removes one layout on the backend.
func (r *Repository) DeleteLayout(ctx context.Context, viewID string) error {
	return r.do(ctx, http.MethodDelete, r.layoutURL(viewID), nil, nil)
}

// ListLayouts fetches every stored layout.
func (r *Repository) ListLayouts(ctx context.Context) ([]domain.ColumnLayout, error) {
	var doc listDocument
	if err := r.do(ctx, http.MethodGet, r.base.JoinPath("layouts").String(), nil, &doc); err != nil {
		return nil, err
	}
	out := make([]domain.ColumnLayout, 0, len(doc.Layouts))
	for _, item := range doc.Layouts {
		layout, err := toColumnLayout(item, "")
		if err != nil {
			return nil, err
		}
		out = append(out, layout)
	}
	return out, nil
}

// Ping checks the backend health endpoint at the URL host root.
func (r *Repository) Ping(ctx context.Context) error {
	health := *r.base
	health.Path = "/healthz"
	return r.do(ctx, http.MethodGet, health.String(), nil, nil)
}

// layoutURL escapes viewID into one `/layouts/{viewId}` URL.
func (r *Repository) layoutURL(viewID string) string {
	return r.base.JoinPath("layouts", url.PathEscape(strings.TrimSpace(viewID))).String()
}

// do sends one request and decodes a JSON response into out when non-nil.
func (r *Repository) do(ctx context.Context, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()
	limited := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, limited)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// statusError maps a non-2xx response into an error, preserving not-found.
func statusError(status int, body io.Reader) error {
	var env errorEnvelope
	_ = json.NewDecoder(body).Decode(&env)
	msg := strings.TrimSpace(env.Error.Message)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("remote %s: %w", msg, app.ErrNotFound)
	}
	return fmt.Errorf("remote status %d: %s", status, msg)
}

// toColumnLayout decodes one wire document into a domain layout. requestedViewID names the layout when
// the document does not carry its own view id.
func toColumnLayout(doc layoutDocument, requestedViewID string) (domain.ColumnLayout, error) {
	entries, err := domain.DecodeColumnState(doc.ColumnState)
	if err != nil {
		return domain.ColumnLayout{}, err
	}
	viewID := strings.TrimSpace(doc.ViewID)
	if viewID == "" {
		viewID = strings.TrimSpace(requestedViewID)
	}
	return domain.NewColumnLayout(viewID, entries, doc.UpdatedAt)
}

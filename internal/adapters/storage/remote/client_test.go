package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/hylla/gridline/internal/adapters/server/httpapi"
	"github.com/hylla/gridline/internal/adapters/storage/sqlite"
	"github.com/hylla/gridline/internal/app"
	"github.com/hylla/gridline/internal/domain"
)

// newBackend serves the REST layout API over a temp-dir sqlite repository.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "backend.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	svc := app.NewLayoutService(store, nil, nil, app.LayoutServiceConfig{})
	mux := http.NewServeMux()
	api := httpapi.NewHandler(common.NewAppServiceAdapter(svc))
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", api))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestRepositoryLayoutLifecycle verifies save, get, list and delete against the REST backend.
func TestRepositoryLayoutLifecycle(t *testing.T) {
	ctx := context.Background()
	server := newBackend(t)
	repo, err := New(server.URL+"/api/v1/", WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := repo.GetLayout(ctx, "orders grid"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("GetLayout() before save error = %v, want ErrNotFound", err)
	}

	layout := domain.ColumnLayout{
		ViewID: "orders grid",
		Columns: []domain.LayoutEntry{
			{Field: "sku", Width: 14, Order: 0, Visible: true},
			{Field: "qty", Order: 1, Visible: false},
		},
	}
	if err := repo.SaveLayout(ctx, layout); err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}

	got, err := repo.GetLayout(ctx, "orders grid")
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	if got.ViewID != "orders grid" || len(got.Columns) != 2 {
		t.Fatalf("GetLayout() = %+v", got)
	}
	if got.Columns[0] != layout.Columns[0] || got.Columns[1] != layout.Columns[1] {
		t.Fatalf("columns = %+v, want %+v", got.Columns, layout.Columns)
	}

	all, err := repo.ListLayouts(ctx)
	if err != nil {
		t.Fatalf("ListLayouts() error = %v", err)
	}
	if len(all) != 1 || all[0].ViewID != "orders grid" {
		t.Fatalf("ListLayouts() = %+v", all)
	}

	if err := repo.DeleteLayout(ctx, "orders grid"); err != nil {
		t.Fatalf("DeleteLayout() error = %v", err)
	}
	if _, err := repo.GetLayout(ctx, "orders grid"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("GetLayout() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

// TestRepositoryThroughLayoutService verifies the remote repo satisfies the app port end to end.
func TestRepositoryThroughLayoutService(t *testing.T) {
	ctx := context.Background()
	server := newBackend(t)
	repo, err := New(server.URL+"/api/v1", WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	svc := app.NewLayoutService(repo, nil, nil, app.LayoutServiceConfig{SaveTimeout: time.Second})

	svc.SaveAsync(domain.ColumnLayout{ViewID: "orders", Columns: []domain.LayoutEntry{{Field: "sku", Visible: true}}})
	svc.Wait()

	layout, found := svc.LoadOrDefault(ctx, "orders")
	if !found || len(layout.Columns) != 1 || layout.Columns[0].Field != "sku" {
		t.Fatalf("LoadOrDefault() = %+v, %v", layout, found)
	}
}

// TestRepositoryServerErrors verifies non-2xx statuses surface as errors.
func TestRepositoryServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"disk full"}}`))
	}))
	defer server.Close()

	repo, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = repo.GetLayout(context.Background(), "orders")
	if err == nil || errors.Is(err, app.ErrNotFound) {
		t.Fatalf("GetLayout() error = %v, want non-not-found error", err)
	}
	if want := "remote status 500: disk full"; err.Error() != want {
		t.Fatalf("GetLayout() error = %q, want %q", err.Error(), want)
	}
}

// TestRepositoryCorruptState verifies undecodable column state is rejected.
func TestRepositoryCorruptState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"viewId":"orders","columnState":"{not json"}`))
	}))
	defer server.Close()

	repo, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := repo.GetLayout(context.Background(), "orders"); !errors.Is(err, domain.ErrInvalidColumnState) {
		t.Fatalf("GetLayout() error = %v, want ErrInvalidColumnState", err)
	}
}

// TestRepositoryGetLayoutColumnStateOnly verifies a bare {columnState} response loads under the requested view.
func TestRepositoryGetLayoutColumnStateOnly(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"columnState":"[{\"field\":\"sku\",\"width\":9,\"order\":0,\"visible\":true},{\"field\":\"notes\",\"order\":1,\"visible\":false}]"}`))
	}))
	defer server.Close()

	repo, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := repo.GetLayout(context.Background(), "orders")
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	if gotPath != "/layouts/orders" {
		t.Fatalf("request path = %q, want /layouts/orders", gotPath)
	}
	if got.ViewID != "orders" {
		t.Fatalf("ViewID = %q, want orders", got.ViewID)
	}
	if len(got.Columns) != 2 || got.Columns[0].Field != "sku" || got.Columns[0].Width != 9 || got.Columns[1].Visible {
		t.Fatalf("unexpected columns %+v", got.Columns)
	}

	svc := app.NewLayoutService(repo, nil, nil, app.LayoutServiceConfig{})
	loaded, found := svc.LoadOrDefault(context.Background(), "orders")
	if !found || loaded.ViewID != "orders" || len(loaded.Columns) != 2 {
		t.Fatalf("LoadOrDefault() = %+v, %v", loaded, found)
	}
}

// TestNewRejectsInvalidBaseURL verifies base url validation.
func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "://bad"} {
		if _, err := New(raw); !errors.Is(err, ErrInvalidBaseURL) {
			t.Fatalf("New(%q) error = %v, want ErrInvalidBaseURL", raw, err)
		}
	}
}

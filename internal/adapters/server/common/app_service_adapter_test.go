package common

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hylla/gridline/internal/adapters/storage/sqlite"
	"github.com/hylla/gridline/internal/app"
)

// newTestAdapter builds an adapter over a temp-dir sqlite repository.
func newTestAdapter(t *testing.T) *AppServiceAdapter {
	t.Helper()
	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "gridline.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	clock := func() time.Time { return time.Date(2026, 2, 25, 2, 32, 0, 0, time.UTC) }
	return NewAppServiceAdapter(app.NewLayoutService(repo, nil, clock, app.LayoutServiceConfig{}))
}

// TestAppServiceAdapterLayoutLifecycle verifies save, get, list and reset through the transport contract.
func TestAppServiceAdapterLayoutLifecycle(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	saved, err := adapter.SaveLayout(ctx, SaveLayoutRequest{
		ViewID:      "orders",
		ColumnState: `[{"field":"qty","order":1,"visible":true},{"field":"sku","width":12,"order":0,"visible":true}]`,
	})
	if err != nil {
		t.Fatalf("SaveLayout() error = %v", err)
	}
	if saved.Columns != 2 || saved.ViewID != "orders" {
		t.Fatalf("SaveLayout() = %+v", saved)
	}
	want := `[{"field":"sku","width":12,"order":0,"visible":true},{"field":"qty","order":1,"visible":true}]`
	if saved.ColumnState != want {
		t.Fatalf("ColumnState = %s, want %s", saved.ColumnState, want)
	}

	got, err := adapter.GetLayout(ctx, " orders ")
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	if got.ColumnState != want {
		t.Fatalf("GetLayout() ColumnState = %s", got.ColumnState)
	}

	docs, err := adapter.ListLayouts(ctx)
	if err != nil {
		t.Fatalf("ListLayouts() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("ListLayouts() = %+v, want 1 doc", docs)
	}

	if err := adapter.ResetLayout(ctx, "orders"); err != nil {
		t.Fatalf("ResetLayout() error = %v", err)
	}
	if _, err := adapter.GetLayout(ctx, "orders"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLayout() after reset error = %v, want ErrNotFound", err)
	}
}

// TestAppServiceAdapterRejectsInvalidInput verifies malformed input maps to ErrInvalidLayoutRequest.
func TestAppServiceAdapterRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	cases := []struct {
		name string
		req  SaveLayoutRequest
	}{
		{name: "missing view", req: SaveLayoutRequest{ColumnState: "[]"}},
		{name: "bad json", req: SaveLayoutRequest{ViewID: "orders", ColumnState: "{"}},
		{name: "duplicate field", req: SaveLayoutRequest{ViewID: "orders", ColumnState: `[{"field":"sku"},{"field":"sku"}]`}},
		{name: "negative width", req: SaveLayoutRequest{ViewID: "orders", ColumnState: `[{"field":"sku","width":-1}]`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := adapter.SaveLayout(ctx, tc.req); !errors.Is(err, ErrInvalidLayoutRequest) {
				t.Fatalf("SaveLayout() error = %v, want ErrInvalidLayoutRequest", err)
			}
		})
	}
}

// TestAppServiceAdapterUnconfigured verifies a nil service reports the surface as unavailable.
func TestAppServiceAdapterUnconfigured(t *testing.T) {
	var adapter *AppServiceAdapter
	if _, err := adapter.GetLayout(context.Background(), "orders"); !errors.Is(err, ErrLayoutUnavailable) {
		t.Fatalf("GetLayout() error = %v, want ErrLayoutUnavailable", err)
	}
	if err := NewAppServiceAdapter(nil).ResetLayout(context.Background(), "orders"); !errors.Is(err, ErrLayoutUnavailable) {
		t.Fatalf("ResetLayout() error = %v, want ErrLayoutUnavailable", err)
	}
}

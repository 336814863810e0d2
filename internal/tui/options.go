package tui

import (
	"context"

	"github.com/hylla/gridline/internal/domain"
	"github.com/hylla/gridline/internal/grid"
)

// LayoutStore loads and persists the grid's column layout.
type LayoutStore interface {
	LoadOrDefault(context.Context, string) (domain.ColumnLayout, bool)
	SaveAsync(domain.ColumnLayout)
	Reset(context.Context, string) error
}

// Logger receives host adapter events.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

type GridConfig struct {
	ViewID             string
	Mode               grid.DataMode
	HistoryCap         int
	SinglePrimaryClick bool
	SuppressedColumns  []string
	Assertions         bool
}

type Option func(*Model)

func DefaultGridConfig() GridConfig {
	return GridConfig{
		ViewID:            "orders",
		Mode:              grid.ModeClientSide,
		HistoryCap:        2,
		SuppressedColumns: []string{"notes"},
	}
}

func WithGridConfig(cfg GridConfig) Option {
	return func(m *Model) {
		m.gridCfg = cfg
	}
}

func WithLayoutStore(store LayoutStore) Option {
	return func(m *Model) {
		m.layouts = store
	}
}

// WithClipboardWriter replaces the system clipboard sink used for copied rows.
func WithClipboardWriter(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.writeClipboard = write
		}
	}
}

func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func withLines(lines []orderLine) Option {
	return func(m *Model) {
		m.rows = lines
	}
}

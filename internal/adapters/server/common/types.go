// Package common provides transport-agnostic server contracts used by HTTP and MCP adapters.
package common

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidLayoutRequest reports malformed layout input.
var ErrInvalidLayoutRequest = errors.New("invalid layout request")

// ErrLayoutUnavailable reports missing layout backing support.
var ErrLayoutUnavailable = errors.New("layout surface unavailable")

// ErrNotFound reports missing transport-visible resources.
var ErrNotFound = errors.New("not found")

// LayoutDocument is the wire form of one persisted view layout.
// ColumnState is the serialized column entry array, opaque to transports.
type LayoutDocument struct {
	ViewID      string    `json:"viewId"`
	ColumnState string    `json:"columnState"`
	Columns     int       `json:"columns"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SaveLayoutRequest replaces the layout stored for one view.
type SaveLayoutRequest struct {
	ViewID      string `json:"viewId,omitempty"`
	ColumnState string `json:"columnState"`
}

// LayoutService is the transport-facing layout surface.
type LayoutService interface {
	GetLayout(context.Context, string) (LayoutDocument, error)
	SaveLayout(context.Context, SaveLayoutRequest) (LayoutDocument, error)
	ResetLayout(context.Context, string) error
	ListLayouts(context.Context) ([]LayoutDocument, error)
}

// ReadinessChecker reports whether backing storage can serve requests.
type ReadinessChecker interface {
	Ping(context.Context) error
}

package app

import (
	"context"

	"github.com/hylla/gridline/internal/domain"
)

// LayoutRepository persists one column layout document per view.
type LayoutRepository interface {
	GetLayout(context.Context, string) (domain.ColumnLayout, error)
	SaveLayout(context.Context, domain.ColumnLayout) error
	DeleteLayout(context.Context, string) error
	ListLayouts(context.Context) ([]domain.ColumnLayout, error)
}

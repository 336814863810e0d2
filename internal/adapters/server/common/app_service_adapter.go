package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hylla/gridline/internal/app"
	"github.com/hylla/gridline/internal/domain"
)

// AppServiceAdapter maps transport contracts onto app.LayoutService.
type AppServiceAdapter struct {
	service *app.LayoutService
}

// NewAppServiceAdapter builds one common adapter over an app.LayoutService instance.
func NewAppServiceAdapter(service *app.LayoutService) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

// GetLayout returns the stored layout document for viewID.
func (a *AppServiceAdapter) GetLayout(ctx context.Context, viewID string) (LayoutDocument, error) {
	if a == nil || a.service == nil {
		return LayoutDocument{}, fmt.Errorf("app service adapter is not configured: %w", ErrLayoutUnavailable)
	}
	viewID, err := normalizeViewID(viewID)
	if err != nil {
		return LayoutDocument{}, err
	}
	layout, err := a.service.Load(ctx, viewID)
	if err != nil {
		return LayoutDocument{}, mapAppError("get layout", err)
	}
	return toLayoutDocument(layout)
}

// SaveLayout decodes the column state and replaces the stored layout.
func (a *AppServiceAdapter) SaveLayout(ctx context.Context, in SaveLayoutRequest) (LayoutDocument, error) {
	if a == nil || a.service == nil {
		return LayoutDocument{}, fmt.Errorf("app service adapter is not configured: %w", ErrLayoutUnavailable)
	}
	viewID, err := normalizeViewID(in.ViewID)
	if err != nil {
		return LayoutDocument{}, err
	}
	entries, err := domain.DecodeColumnState(in.ColumnState)
	if err != nil {
		return LayoutDocument{}, mapAppError("save layout", err)
	}
	saved, err := a.service.Save(ctx, domain.ColumnLayout{ViewID: viewID, Columns: entries})
	if err != nil {
		return LayoutDocument{}, mapAppError("save layout", err)
	}
	return toLayoutDocument(saved)
}

// ResetLayout removes the stored layout for viewID.
func (a *AppServiceAdapter) ResetLayout(ctx context.Context, viewID string) error {
	if a == nil || a.service == nil {
		return fmt.Errorf("app service adapter is not configured: %w", ErrLayoutUnavailable)
	}
	viewID, err := normalizeViewID(viewID)
	if err != nil {
		return err
	}
	return mapAppError("reset layout", a.service.Reset(ctx, viewID))
}

// ListLayouts returns every stored layout document.
func (a *AppServiceAdapter) ListLayouts(ctx context.Context) ([]LayoutDocument, error) {
	if a == nil || a.service == nil {
		return nil, fmt.Errorf("app service adapter is not configured: %w", ErrLayoutUnavailable)
	}
	layouts, err := a.service.List(ctx)
	if err != nil {
		return nil, mapAppError("list layouts", err)
	}
	out := make([]LayoutDocument, 0, len(layouts))
	for _, layout := range layouts {
		doc, err := toLayoutDocument(layout)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// normalizeViewID trims and validates one view identifier.
func normalizeViewID(viewID string) (string, error) {
	viewID = strings.TrimSpace(viewID)
	if viewID == "" {
		return "", fmt.Errorf("view_id is required: %w", ErrInvalidLayoutRequest)
	}
	return viewID, nil
}

// toLayoutDocument encodes a domain layout into its wire form.
func toLayoutDocument(layout domain.ColumnLayout) (LayoutDocument, error) {
	state, err := domain.EncodeColumnState(layout.Columns)
	if err != nil {
		return LayoutDocument{}, err
	}
	return LayoutDocument{
		ViewID:      layout.ViewID,
		ColumnState: state,
		Columns:     len(layout.Columns),
		UpdatedAt:   layout.UpdatedAt,
	}, nil
}

// mapAppError maps app and domain errors onto transport sentinels.
func mapAppError(operation string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrNotFound, err))
	case errors.Is(err, app.ErrNoRepository):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrLayoutUnavailable, err))
	case errors.Is(err, domain.ErrInvalidViewID),
		errors.Is(err, domain.ErrInvalidField),
		errors.Is(err, domain.ErrInvalidWidth),
		errors.Is(err, domain.ErrDuplicateField),
		errors.Is(err, domain.ErrInvalidColumnState):
		return fmt.Errorf("%s: %w", operation, errors.Join(ErrInvalidLayoutRequest, err))
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/hylla/gridline/internal/domain"
)

// DefaultLoadTimeout and related constants define package defaults.
const (
	DefaultLoadTimeout = 2 * time.Second
	DefaultSaveTimeout = 5 * time.Second
)

// Clock returns the current time.
type Clock func() time.Time

// Logger receives layout persistence events.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
}

// LayoutServiceConfig holds configuration for the layout service.
type LayoutServiceConfig struct {
	LoadTimeout time.Duration
	SaveTimeout time.Duration
}

// LayoutService loads, saves and resets per-view column layouts.
type LayoutService struct {
	repo        LayoutRepository
	logger      Logger
	clock       Clock
	loadTimeout time.Duration
	saveTimeout time.Duration
	pending     sync.WaitGroup
}

// NewLayoutService constructs a layout service.
func NewLayoutService(repo LayoutRepository, logger Logger, clock Clock, cfg LayoutServiceConfig) *LayoutService {
	if logger == nil {
		logger = charmLog.NewWithOptions(io.Discard, charmLog.Options{})
	}
	if clock == nil {
		clock = time.Now
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}
	return &LayoutService{
		repo:        repo,
		logger:      logger,
		clock:       clock,
		loadTimeout: cfg.LoadTimeout,
		saveTimeout: cfg.SaveTimeout,
	}
}

// Load returns the persisted layout for viewID.
func (s *LayoutService) Load(ctx context.Context, viewID string) (domain.ColumnLayout, error) {
	viewID = strings.TrimSpace(viewID)
	if viewID == "" {
		return domain.ColumnLayout{}, domain.ErrInvalidViewID
	}
	if s.repo == nil {
		return domain.ColumnLayout{}, ErrNoRepository
	}
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()
	layout, err := s.repo.GetLayout(ctx, viewID)
	if err != nil {
		return domain.ColumnLayout{}, fmt.Errorf("load layout %q: %w", viewID, err)
	}
	return layout, nil
}

// LoadOrDefault loads the layout for viewID and reports found=false on any failure so callers keep defaults.
// Failures other than not-found are logged.
func (s *LayoutService) LoadOrDefault(ctx context.Context, viewID string) (domain.ColumnLayout, bool) {
	layout, err := s.Load(ctx, viewID)
	switch {
	case err == nil:
		return layout, true
	case errors.Is(err, ErrNotFound):
		s.logger.Debug("no saved layout", "view_id", viewID)
	default:
		s.logger.Warn("layout load failed; using defaults", "view_id", viewID, "err", err)
	}
	return domain.ColumnLayout{}, false
}

// Save validates and persists layout, replacing any earlier document for the view.
func (s *LayoutService) Save(ctx context.Context, layout domain.ColumnLayout) (domain.ColumnLayout, error) {
	updatedAt := layout.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.clock()
	}
	normalized, err := domain.NewColumnLayout(layout.ViewID, layout.Columns, updatedAt)
	if err != nil {
		return domain.ColumnLayout{}, fmt.Errorf("save layout %q: %w", layout.ViewID, err)
	}
	if s.repo == nil {
		return domain.ColumnLayout{}, ErrNoRepository
	}
	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()
	if err := s.repo.SaveLayout(ctx, normalized); err != nil {
		return domain.ColumnLayout{}, fmt.Errorf("save layout %q: %w", normalized.ViewID, err)
	}
	return normalized, nil
}

// SaveAsync persists layout in the background. Failures are logged and otherwise dropped.
func (s *LayoutService) SaveAsync(layout domain.ColumnLayout) {
	layout = layout.Clone()
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if _, err := s.Save(context.Background(), layout); err != nil {
			s.logger.Warn("layout save failed", "view_id", layout.ViewID, "err", err)
			return
		}
		s.logger.Debug("layout saved", "view_id", layout.ViewID, "columns", len(layout.Columns))
	}()
}

// Wait blocks until every SaveAsync call has finished.
func (s *LayoutService) Wait() {
	s.pending.Wait()
}

// Reset removes the persisted layout for viewID. A view without a saved layout resets successfully.
func (s *LayoutService) Reset(ctx context.Context, viewID string) error {
	viewID = strings.TrimSpace(viewID)
	if viewID == "" {
		return domain.ErrInvalidViewID
	}
	if s.repo == nil {
		return ErrNoRepository
	}
	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()
	if err := s.repo.DeleteLayout(ctx, viewID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("reset layout %q: %w", viewID, err)
	}
	return nil
}

// List returns every persisted layout ordered by view id.
func (s *LayoutService) List(ctx context.Context) ([]domain.ColumnLayout, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}
	layouts, err := s.repo.ListLayouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return layouts, nil
}

package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"go.uber.org/multierr"

	"github.com/yuanying/epubnav/internal/logging"
)

// DefaultLocationGranularity is the number of characters per generated
// location when building the location index.
const DefaultLocationGranularity = 1600

var (
	// ErrBookmarkUnreachable means neither the CFI nor the percentage of a
	// bookmark could be displayed.
	ErrBookmarkUnreachable = errors.New("could not navigate to bookmark")
	// ErrLocationUnavailable means no CFI has been reported yet, so a bookmark
	// cannot be created.
	ErrLocationUnavailable = errors.New("current location not available yet")
	// ErrNoLocations means the session has no location index to generate.
	ErrNoLocations = errors.New("no location index available")
)

// Target describes how a bookmark was resolved.
type Target struct {
	Strategy string // "cfi" or "percentage"
	CFI      string
}

// Resolver maps stored bookmarks to renderable targets.
type Resolver struct {
	renderer    Renderer
	locations   Locations
	granularity int
	logger      *slog.Logger

	mu        sync.Mutex
	generated bool
}

// NewResolver creates a resolver. A non-positive granularity selects
// DefaultLocationGranularity.
func NewResolver(renderer Renderer, locations Locations, granularity int, logger *slog.Logger) *Resolver {
	if granularity <= 0 {
		granularity = DefaultLocationGranularity
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		renderer:    renderer,
		locations:   locations,
		granularity: granularity,
		logger:      logger,
	}
}

// Resolve displays the bookmark's position. The CFI is tried first; the
// stored percentage is used when the CFI is missing or fails to display.
func (r *Resolver) Resolve(ctx context.Context, b Bookmark) (Target, error) {
	var errs error

	if b.CFI != nil && *b.CFI != "" {
		err := r.renderer.Display(ctx, *b.CFI)
		if err == nil {
			return Target{Strategy: "cfi", CFI: *b.CFI}, nil
		}
		r.logger.Debug("bookmark cfi failed", "bookmark_id", b.ID, "cfi", *b.CFI, "error", err)
		errs = multierr.Append(errs, fmt.Errorf("cfi: %w", err))
	}

	if b.PositionPercentage != nil && *b.PositionPercentage > 0 {
		cfi, err := r.displayPercentage(ctx, *b.PositionPercentage)
		if err == nil {
			return Target{Strategy: "percentage", CFI: cfi}, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("percentage: %w", err))
	}

	if errs == nil {
		return Target{}, fmt.Errorf("%w: bookmark %d has no position", ErrBookmarkUnreachable, b.ID)
	}
	return Target{}, fmt.Errorf("%w: %w", ErrBookmarkUnreachable, errs)
}

func (r *Resolver) displayPercentage(ctx context.Context, pct float64) (string, error) {
	if err := r.EnsureLocations(ctx); err != nil {
		return "", err
	}
	cfi, err := r.locations.CFIFromPercentage(math.Min(pct, 100) / 100)
	if err != nil {
		return "", fmt.Errorf("cfi from percentage: %w", err)
	}
	if cfi == "" {
		return "", fmt.Errorf("no cfi for %.2f%%", pct)
	}
	if err := r.renderer.Display(ctx, cfi); err != nil {
		return "", err
	}
	return cfi, nil
}

// EnsureLocations generates the location index once per session.
func (r *Resolver) EnsureLocations(ctx context.Context) error {
	if r.locations == nil {
		return ErrNoLocations
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generated || r.locations.Len() > 0 {
		r.generated = true
		return nil
	}
	r.logger.Info("generating location index", "granularity", r.granularity)
	if err := r.locations.Generate(ctx, r.granularity); err != nil {
		return fmt.Errorf("generate locations: %w", err)
	}
	r.generated = true
	return nil
}

// CreateRequest is the bookmark-creation payload sent to the persistence
// collaborator.
type CreateRequest struct {
	BookmarkName       string   `json:"bookmark_name"`
	ChapterTitle       *string  `json:"chapter_title"`
	CFI                string   `json:"cfi"`
	PositionPercentage *float64 `json:"position_percentage"`
}

// NewCreateRequest builds a bookmark-creation request from the current
// reading state. An empty name defaults to the chapter label, then to the
// reading progress. A label carried over from an earlier location is not
// used as the chapter title.
func NewCreateRequest(name string, state *ReadingState) (CreateRequest, error) {
	loc := state.Location()
	if loc.CFI == "" {
		return CreateRequest{}, ErrLocationUnavailable
	}

	req := CreateRequest{BookmarkName: name, CFI: loc.CFI}
	if label, ok := state.ChapterTitle(); ok && label != "" {
		req.ChapterTitle = &label
	}
	pct := math.Round(loc.Percentage*10000) / 100
	req.PositionPercentage = &pct

	if req.BookmarkName == "" {
		if req.ChapterTitle != nil {
			req.BookmarkName = *req.ChapterTitle
		} else {
			req.BookmarkName = fmt.Sprintf("Bookmark %.0f%%", pct)
		}
	}
	return req, nil
}

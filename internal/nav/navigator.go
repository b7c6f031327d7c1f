package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/yuanying/epubnav/internal/logging"
)

// ErrNoTarget is returned by a navigation tier that could not find an
// adjacent entry for the current location.
var ErrNoTarget = errors.New("no navigation target")

// Direction selects forward or backward navigation.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "previous"
	}
	return "next"
}

// Tier names reported by Navigator.Step.
const (
	TierSpine    = "spine"
	TierChapters = "chapters"
	TierEngine   = "engine"
)

// AdjacentSpineHref returns the href of the spine item next to current in
// direction dir.
func AdjacentSpineHref(spine []SpineItem, current string, dir Direction) (string, bool) {
	hrefs := make([]string, len(spine))
	for i, item := range spine {
		hrefs[i] = item.Href
	}
	return adjacent(hrefs, current, dir)
}

// AdjacentChapterHref returns the entry next to current in the pre-order
// flattened hrefs of items.
func AdjacentChapterHref(items []NavItem, current string, dir Direction) (string, bool) {
	return adjacent(flattenHrefs(nil, items), current, dir)
}

func adjacent(hrefs []string, current string, dir Direction) (string, bool) {
	idx := indexOfHref(hrefs, current)
	if idx < 0 {
		return "", false
	}
	next := idx + int(dir)
	if next < 0 || next >= len(hrefs) {
		return "", false
	}
	return hrefs[next], true
}

type navTier struct {
	name string
	run  func(ctx context.Context, current string, dir Direction) error
}

// Navigator implements next/previous over a three-tier fallback chain:
// spine order, chapter order, then the engine's own page turn.
type Navigator struct {
	doc      *DocumentContext
	state    *ReadingState
	renderer Renderer
	logger   *slog.Logger
	tiers    []navTier
}

// NewNavigator creates a navigator for one document session.
func NewNavigator(doc *DocumentContext, state *ReadingState, renderer Renderer, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = logging.Discard()
	}
	n := &Navigator{doc: doc, state: state, renderer: renderer, logger: logger}
	n.tiers = []navTier{
		{name: TierSpine, run: n.spineStep},
		{name: TierChapters, run: n.chapterStep},
		{name: TierEngine, run: n.engineStep},
	}
	return n
}

// Next moves forward. Exhausting every tier is not an error.
func (n *Navigator) Next(ctx context.Context) error {
	_, err := n.Step(ctx, Forward)
	return err
}

// Previous moves backward. Exhausting every tier is not an error.
func (n *Navigator) Previous(ctx context.Context) error {
	_, err := n.Step(ctx, Backward)
	return err
}

// Step runs the tiers in order and returns the name of the tier that
// succeeded, or "" when none did. Only context cancellation is returned as
// an error.
func (n *Navigator) Step(ctx context.Context, dir Direction) (string, error) {
	current := n.state.Location().Href
	var errs error
	for _, tier := range n.tiers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		err := tier.run(ctx, current, dir)
		if err == nil {
			n.logger.Debug("navigated", "direction", dir.String(), "tier", tier.name, "from", current)
			return tier.name, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", tier.name, err))
	}
	n.logger.Debug("navigation exhausted", "direction", dir.String(), "from", current, "error", errs)
	return "", nil
}

// GoTo displays a chapter-list entry or any other href.
func (n *Navigator) GoTo(ctx context.Context, href string) error {
	if href == "" {
		return ErrNoTarget
	}
	if err := n.renderer.Display(ctx, href); err != nil {
		return fmt.Errorf("display %s: %w", href, err)
	}
	return nil
}

func (n *Navigator) spineStep(ctx context.Context, current string, dir Direction) error {
	target, ok := AdjacentSpineHref(n.doc.Spine, current, dir)
	if !ok {
		return ErrNoTarget
	}
	return n.renderer.Display(ctx, target)
}

func (n *Navigator) chapterStep(ctx context.Context, current string, dir Direction) error {
	target, ok := adjacent(n.doc.ChapterHrefs(), current, dir)
	if !ok {
		return ErrNoTarget
	}
	return n.renderer.Display(ctx, target)
}

func (n *Navigator) engineStep(ctx context.Context, _ string, dir Direction) error {
	if dir == Backward {
		return n.renderer.Prev(ctx)
	}
	return n.renderer.Next(ctx)
}

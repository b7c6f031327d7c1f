package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/yuanying/epubnav/internal/nav"
)

var (
	ErrOutOfRange    = errors.New("position outside the spine")
	ErrUnknownTarget = errors.New("target not found in book")
	ErrNotDisplayed  = errors.New("nothing displayed yet")
	ErrEndOfBook     = errors.New("already at the last section")
	ErrStartOfBook   = errors.New("already at the first section")
)

// position is a character offset within a spine section.
type position struct {
	index  int
	offset int
}

func (p position) compare(o position) int {
	if p.index != o.index {
		return p.index - o.index
	}
	return p.offset - o.offset
}

// Rendition displays positions of a book and reports every move to its
// location-changed handlers. It moves section by section.
type Rendition struct {
	book   *Book
	logger *slog.Logger

	mu        sync.Mutex
	displayed bool
	pos       position
	handlers  []func(nav.Location)
}

// NewRendition returns a rendition with nothing displayed.
func (b *Book) NewRendition() *Rendition {
	return &Rendition{book: b, logger: b.logger}
}

// OnLocationChanged registers fn to be called after every successful move.
func (r *Rendition) OnLocationChanged(fn func(nav.Location)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, fn)
}

// Current returns the displayed location.
func (r *Rendition) Current() (nav.Location, bool) {
	r.mu.Lock()
	pos, ok := r.pos, r.displayed
	r.mu.Unlock()
	if !ok {
		return nav.Location{}, false
	}
	return r.location(pos), true
}

// Display moves to target: a package-relative href (optionally with a
// fragment), a CFI, or "" for the first linear section.
func (r *Rendition) Display(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pos, err := r.resolve(target)
	if err != nil {
		return err
	}
	r.moveTo(pos)
	return nil
}

// Next moves to the start of the following section.
func (r *Rendition) Next(ctx context.Context) error {
	return r.step(ctx, 1)
}

// Prev moves to the start of the preceding section.
func (r *Rendition) Prev(ctx context.Context) error {
	return r.step(ctx, -1)
}

func (r *Rendition) step(ctx context.Context, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	pos, ok := r.pos, r.displayed
	r.mu.Unlock()
	if !ok {
		return ErrNotDisplayed
	}

	next := pos.index + delta
	switch {
	case next >= len(r.book.spine):
		return ErrEndOfBook
	case next < 0:
		return ErrStartOfBook
	}
	if _, err := r.book.section(next); err != nil {
		return err
	}
	r.moveTo(position{index: next})
	return nil
}

func (r *Rendition) resolve(target string) (position, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return position{index: r.book.firstLinear()}, nil
	}

	if IsCFI(target) {
		index, offset, err := ParseCFI(target)
		if err != nil {
			return position{}, err
		}
		c, err := r.book.section(index)
		if err != nil {
			return position{}, err
		}
		return position{index: index, offset: min(offset, c.TextLength)}, nil
	}

	p, fragment := nav.NormalizeHref(target), ""
	if _, f, ok := strings.Cut(target, "#"); ok {
		fragment = f
	}
	index, ok := r.book.spineIndex(p)
	if !ok {
		return position{}, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	c, err := r.book.section(index)
	if err != nil {
		return position{}, err
	}
	offset, ok := c.AnchorOffset(fragment)
	if !ok {
		r.logger.Debug("fragment not found, displaying section start", "href", target)
	}
	return position{index: index, offset: offset}, nil
}

func (r *Rendition) moveTo(pos position) {
	r.mu.Lock()
	r.pos = pos
	r.displayed = true
	handlers := slices.Clone(r.handlers)
	r.mu.Unlock()

	loc := r.location(pos)
	r.logger.Debug("location changed", "href", loc.Href, "cfi", loc.CFI, "percentage", loc.Percentage)
	for _, h := range handlers {
		h(loc)
	}
}

func (r *Rendition) location(pos position) nav.Location {
	return nav.Location{
		CFI:        FormatCFI(pos.index, pos.offset),
		Href:       r.book.spine[pos.index].Href,
		Percentage: r.book.locations.percentageAt(pos),
	}
}

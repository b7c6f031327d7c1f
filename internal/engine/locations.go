package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrNotGenerated is returned by lookups on an empty location index.
var ErrNotGenerated = errors.New("locations not generated")

// Locations is the location index of a book: evenly spaced positions every
// granularity characters of section text, in reading order.
type Locations struct {
	book *Book

	mu        sync.Mutex
	positions []position
}

// Len returns the number of generated locations.
func (l *Locations) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.positions)
}

// Generate builds the index, replacing any previous one. Every section
// contributes at least its start position. Sections that cannot be loaded
// are skipped.
func (l *Locations) Generate(ctx context.Context, granularity int) error {
	if granularity <= 0 {
		return fmt.Errorf("invalid location granularity %d", granularity)
	}

	var positions []position
	for i := range l.book.spine {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := l.book.section(i)
		if err != nil {
			l.book.logger.Warn("skipping section in location index", "href", l.book.spine[i].Href, "error", err)
			continue
		}
		for off := 0; off < max(c.TextLength, 1); off += granularity {
			positions = append(positions, position{index: i, offset: off})
		}
	}

	l.mu.Lock()
	l.positions = positions
	l.mu.Unlock()

	l.book.logger.Debug("locations generated", "granularity", granularity, "count", len(positions))
	return nil
}

// CFIFromPercentage returns the CFI of the location at fraction p (0..1) of
// the index. Out-of-range fractions are clamped.
func (l *Locations) CFIFromPercentage(p float64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.positions)
	if n == 0 {
		return "", ErrNotGenerated
	}
	if math.IsNaN(p) {
		return "", fmt.Errorf("invalid percentage %v", p)
	}
	p = math.Min(math.Max(p, 0), 1)
	pos := l.positions[int(math.Ceil(float64(n-1)*p))]
	return FormatCFI(pos.index, pos.offset), nil
}

// PercentageFromCFI returns the fraction of the index preceding cfi.
func (l *Locations) PercentageFromCFI(cfi string) (float64, error) {
	index, offset, err := ParseCFI(cfi)
	if err != nil {
		return 0, err
	}
	if l.Len() == 0 {
		return 0, ErrNotGenerated
	}
	return l.percentageAt(position{index: index, offset: offset}), nil
}

// percentageAt returns 0 when the index is empty.
func (l *Locations) percentageAt(pos position) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.positions)
	if n < 2 {
		return 0
	}
	i := sort.Search(n, func(i int) bool { return l.positions[i].compare(pos) > 0 }) - 1
	if i < 0 {
		i = 0
	}
	return float64(i) / float64(n-1)
}

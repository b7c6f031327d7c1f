// Package engine is an in-process rendering engine over an EPUB file. It
// reports navigation metadata, moves between section positions addressed by
// CFIs, and builds the location index used for percentage lookups.
package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yuanying/epubnav/internal/epub"
	"github.com/yuanying/epubnav/internal/logging"
	"github.com/yuanying/epubnav/internal/nav"
)

// Book is the engine's view of an opened publication: navigation metadata,
// the spine, and measured section text.
type Book struct {
	src       *epub.Book
	id        string
	toc       []nav.NavItem
	landmarks []nav.Landmark
	spine     []nav.SpineItem
	logger    *slog.Logger

	locations *Locations

	mu       sync.Mutex
	sections map[int]*epub.Content
}

// Open loads the EPUB at path.
func Open(path string, logger *slog.Logger) (*Book, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	src, err := epub.Load(path)
	if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}

	b := &Book{
		src:       src,
		id:        bookID(src.OPF.Metadata.Identifier, path),
		toc:       convertTOC(src.Navigation.TOC),
		landmarks: convertLandmarks(src.Navigation.Landmarks),
		logger:    logger,
		sections:  map[int]*epub.Content{},
	}
	b.locations = &Locations{book: b}
	for i, href := range src.SpineHrefs() {
		b.spine = append(b.spine, nav.SpineItem{Href: href, Index: i})
	}

	logger.Debug("book opened",
		"path", path,
		"title", src.OPF.Metadata.Title,
		"navigation", src.Navigation.Source,
		"toc_entries", len(b.toc),
		"landmarks", len(b.landmarks),
		"spine_items", len(b.spine),
	)
	return b, nil
}

// Close releases the underlying archive.
func (b *Book) Close() error {
	return b.src.Close()
}

// ID identifies the book in the bookmark store: the package identifier, or
// the file name when the package declares none.
func (b *Book) ID() string { return b.id }

// Title returns the publication title.
func (b *Book) Title() string { return b.src.OPF.Metadata.Title }

// TOC returns the table of contents.
func (b *Book) TOC() []nav.NavItem { return b.toc }

// Landmarks returns the landmarks list (EPUB 3 nav or EPUB 2 guide).
func (b *Book) Landmarks() []nav.Landmark { return b.landmarks }

// Spine returns the reading order.
func (b *Book) Spine() []nav.SpineItem { return b.spine }

// Locations returns the book's location index. It is empty until
// generated.
func (b *Book) Locations() *Locations { return b.locations }

// section loads and caches the content document of a spine item.
func (b *Book) section(index int) (*epub.Content, error) {
	if index < 0 || index >= len(b.spine) {
		return nil, fmt.Errorf("%w: spine index %d", ErrOutOfRange, index)
	}

	b.mu.Lock()
	c, ok := b.sections[index]
	b.mu.Unlock()
	if ok {
		return c, nil
	}

	c, err := b.src.ReadContent(b.spine[index].Href)
	if err != nil {
		return nil, fmt.Errorf("load section %s: %w", b.spine[index].Href, err)
	}
	b.mu.Lock()
	b.sections[index] = c
	b.mu.Unlock()
	return c, nil
}

// spineIndex returns the spine index of a fragment-free href.
func (b *Book) spineIndex(p string) (int, bool) {
	for _, item := range b.spine {
		if item.Href == p {
			return item.Index, true
		}
	}
	return 0, false
}

// firstLinear returns the first spine item meant for linear reading.
func (b *Book) firstLinear() int {
	for i, item := range b.src.OPF.Spine {
		if item.Linear {
			return i
		}
	}
	return 0
}

func bookID(identifier, path string) string {
	if id := strings.TrimSpace(identifier); id != "" {
		return id
	}
	return filepath.Base(path)
}

func convertTOC(points []epub.NavPoint) []nav.NavItem {
	if len(points) == 0 {
		return nil
	}
	out := make([]nav.NavItem, 0, len(points))
	for _, p := range points {
		out = append(out, nav.NavItem{
			Label:    p.Label,
			Href:     p.Href(),
			Children: convertTOC(p.Children),
		})
	}
	return out
}

func convertLandmarks(in []epub.Landmark) []nav.Landmark {
	if len(in) == 0 {
		return nil
	}
	out := make([]nav.Landmark, 0, len(in))
	for _, l := range in {
		out = append(out, nav.Landmark{Type: l.Type, Label: l.Label, Href: l.Href})
	}
	return out
}

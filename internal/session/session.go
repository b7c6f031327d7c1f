// Package session wires one opened book to the navigation core: the
// engine rendition, the document context, position tracking, sequential
// navigation and bookmark restoration.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yuanying/epubnav/internal/engine"
	"github.com/yuanying/epubnav/internal/logging"
	"github.com/yuanying/epubnav/internal/nav"
)

var (
	// ErrNoStore is returned by bookmark operations on a session opened
	// without a bookmark store.
	ErrNoStore = errors.New("no bookmark store configured")
	// ErrChapterOutOfRange is returned for chapter indexes outside the
	// chapter list.
	ErrChapterOutOfRange = errors.New("chapter index out of range")
)

// BookmarkStore persists bookmarks per ebook.
type BookmarkStore interface {
	Create(ctx context.Context, ebookID string, req nav.CreateRequest) (nav.Bookmark, error)
	List(ctx context.Context, ebookID string) ([]nav.Bookmark, error)
	Get(ctx context.Context, ebookID string, id int64) (nav.Bookmark, error)
	Delete(ctx context.Context, ebookID string, id int64) error
}

// Options configures a session.
type Options struct {
	Path                string
	LocationGranularity int
	Store               BookmarkStore
	Logger              *slog.Logger
}

// Session is one reading session over one document load. Navigation data is
// built once on Open and discarded on Close.
type Session struct {
	ID string

	book      *engine.Book
	rendition *engine.Rendition
	doc       *nav.DocumentContext
	state     *nav.ReadingState
	tracker   *nav.Tracker
	navigator *nav.Navigator
	resolver  *nav.Resolver
	store     BookmarkStore
	logger    *slog.Logger
}

// Open loads the book at opts.Path and builds its navigation context.
// Nothing is displayed until Start or Display is called.
func Open(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	book, err := engine.Open(opts.Path, logger)
	if err != nil {
		return nil, err
	}

	doc := nav.NewDocumentContext(book.TOC(), book.Landmarks(), book.Spine())
	state := &nav.ReadingState{}
	rendition := book.NewRendition()

	s := &Session{
		ID:        id,
		book:      book,
		rendition: rendition,
		doc:       doc,
		state:     state,
		tracker:   nav.NewTracker(doc, state, logger),
		navigator: nav.NewNavigator(doc, state, rendition, logger),
		resolver:  nav.NewResolver(rendition, book.Locations(), opts.LocationGranularity, logger),
		store:     opts.Store,
		logger:    logger,
	}
	rendition.OnLocationChanged(s.tracker.HandleLocationChanged)

	logger.Info("session opened",
		"book", book.ID(),
		"title", book.Title(),
		"chapters", len(doc.Chapters),
		"spine_items", len(doc.Spine),
	)
	return s, nil
}

// Close releases the book.
func (s *Session) Close() error {
	s.logger.Debug("session closed")
	return s.book.Close()
}

// Book returns the opened book.
func (s *Session) Book() *engine.Book { return s.book }

// Document returns the navigation context built for the book.
func (s *Session) Document() *nav.DocumentContext { return s.doc }

// Location returns the last reported location.
func (s *Session) Location() nav.Location { return s.state.Location() }

// Label returns the current chapter label.
func (s *Session) Label() (string, bool) { return s.state.Label() }

// ChapterIndex returns the chapter-list index of the current location, or -1.
func (s *Session) ChapterIndex() int { return s.tracker.ChapterIndex() }

// Start displays the initial reading position. Each initial-location
// candidate is tried in priority order; when none resolves or displays, the
// engine's default is shown. The displayed target is returned ("" for the
// engine default).
func (s *Session) Start(ctx context.Context) (string, error) {
	for _, target := range s.doc.InitialLocationCandidates() {
		err := s.rendition.Display(ctx, target)
		if err == nil {
			s.logger.Debug("displayed initial location", "target", target)
			return target, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.logger.Warn("initial location failed", "target", target, "error", err)
	}
	if err := s.rendition.Display(ctx, ""); err != nil {
		return "", fmt.Errorf("display start: %w", err)
	}
	s.logger.Debug("displayed engine default location")
	return "", nil
}

// Display shows an href or CFI.
func (s *Session) Display(ctx context.Context, target string) error {
	return s.rendition.Display(ctx, target)
}

// Next moves forward and returns the tier that moved ("" when none did).
func (s *Session) Next(ctx context.Context) (string, error) {
	return s.navigator.Step(ctx, nav.Forward)
}

// Previous moves backward and returns the tier that moved ("" when none did).
func (s *Session) Previous(ctx context.Context) (string, error) {
	return s.navigator.Step(ctx, nav.Backward)
}

// GoToChapter displays the chapter-list entry at index.
func (s *Session) GoToChapter(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.doc.Chapters) {
		return fmt.Errorf("%w: %d", ErrChapterOutOfRange, index)
	}
	return s.navigator.GoTo(ctx, s.doc.Chapters[index].Href)
}

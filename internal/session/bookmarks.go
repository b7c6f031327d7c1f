package session

import (
	"context"
	"fmt"

	"github.com/yuanying/epubnav/internal/nav"
)

// AddBookmark stores the current position. An empty name defaults to the
// chapter label or the reading progress.
func (s *Session) AddBookmark(ctx context.Context, name string) (nav.Bookmark, error) {
	if s.store == nil {
		return nav.Bookmark{}, ErrNoStore
	}
	s.refreshPercentage(ctx)

	req, err := nav.NewCreateRequest(name, s.state)
	if err != nil {
		return nav.Bookmark{}, err
	}
	b, err := s.store.Create(ctx, s.book.ID(), req)
	if err != nil {
		return nav.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	s.logger.Info("bookmark created", "bookmark_id", b.ID, "name", b.Name, "cfi", req.CFI)
	return b, nil
}

// refreshPercentage fills in the reading progress of the current location,
// which the engine can only report once the location index exists.
func (s *Session) refreshPercentage(ctx context.Context) {
	loc := s.state.Location()
	if loc.CFI == "" || loc.Percentage > 0 {
		return
	}
	if err := s.resolver.EnsureLocations(ctx); err != nil {
		s.logger.Debug("location index unavailable", "error", err)
		return
	}
	pct, err := s.book.Locations().PercentageFromCFI(loc.CFI)
	if err != nil {
		return
	}
	s.state.SetPercentage(pct)
}

// Bookmarks lists the bookmarks of the open book.
func (s *Session) Bookmarks(ctx context.Context) ([]nav.Bookmark, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.List(ctx, s.book.ID())
}

// GoToBookmark displays a stored bookmark.
func (s *Session) GoToBookmark(ctx context.Context, id int64) (nav.Target, error) {
	if s.store == nil {
		return nav.Target{}, ErrNoStore
	}
	b, err := s.store.Get(ctx, s.book.ID(), id)
	if err != nil {
		return nav.Target{}, err
	}
	target, err := s.resolver.Resolve(ctx, b)
	if err != nil {
		s.logger.Warn("bookmark unreachable", "bookmark_id", id, "error", err)
		return nav.Target{}, err
	}
	s.logger.Debug("bookmark restored", "bookmark_id", id, "strategy", target.Strategy, "cfi", target.CFI)
	return target, nil
}

// DeleteBookmark removes a stored bookmark of the open book.
func (s *Session) DeleteBookmark(ctx context.Context, id int64) error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Delete(ctx, s.book.ID(), id)
}

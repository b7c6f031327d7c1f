// Package bookmark persists reading positions in SQLite.
package bookmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yuanying/epubnav/internal/nav"
)

var (
	// ErrNotFound is returned when no bookmark matches the ebook and id.
	ErrNotFound = errors.New("bookmark not found")
	// ErrInvalidRequest is returned for creation requests without a name or
	// a position.
	ErrInvalidRequest = errors.New("invalid bookmark request")
)

const bookmarkColumns = "id, ebook_id, bookmark_name, chapter_title, cfi, position_percentage, created_at, updated_at"

// Store manages bookmark persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the bookmark database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create stores a bookmark for ebookID.
func (s *Store) Create(ctx context.Context, ebookID string, req nav.CreateRequest) (nav.Bookmark, error) {
	name := strings.TrimSpace(req.BookmarkName)
	switch {
	case ebookID == "":
		return nav.Bookmark{}, fmt.Errorf("%w: missing ebook id", ErrInvalidRequest)
	case name == "":
		return nav.Bookmark{}, fmt.Errorf("%w: missing name", ErrInvalidRequest)
	case req.CFI == "" && req.PositionPercentage == nil:
		return nav.Bookmark{}, fmt.Errorf("%w: missing position", ErrInvalidRequest)
	}

	timestamp := s.now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO bookmarks (
            ebook_id, bookmark_name, chapter_title, cfi, position_percentage, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ebookID,
		name,
		nullableString(req.ChapterTitle),
		nullableString(&req.CFI),
		nullableFloat(req.PositionPercentage),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nav.Bookmark{}, fmt.Errorf("insert bookmark: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nav.Bookmark{}, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(ctx, ebookID, id)
}

// List returns the bookmarks of ebookID, oldest first.
func (s *Store) List(ctx context.Context, ebookID string) ([]nav.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE ebook_id = ? ORDER BY id`, ebookID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []nav.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return out, nil
}

// Get fetches one bookmark of ebookID.
func (s *Store) Get(ctx context.Context, ebookID string, id int64) (nav.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE ebook_id = ? AND id = ?`, ebookID, id)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nav.Bookmark{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nav.Bookmark{}, err
	}
	return b, nil
}

// Delete removes one bookmark of ebookID.
func (s *Store) Delete(ctx context.Context, ebookID string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE ebook_id = ? AND id = ?`, ebookID, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func scanBookmark(scanner interface{ Scan(dest ...any) error }) (nav.Bookmark, error) {
	var (
		b            nav.Bookmark
		chapterTitle sql.NullString
		cfi          sql.NullString
		percentage   sql.NullFloat64
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(
		&b.ID,
		&b.EbookID,
		&b.Name,
		&chapterTitle,
		&cfi,
		&percentage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nav.Bookmark{}, err
		}
		return nav.Bookmark{}, fmt.Errorf("scan bookmark: %w", err)
	}

	if chapterTitle.Valid {
		b.ChapterTitle = &chapterTitle.String
	}
	if cfi.Valid {
		b.CFI = &cfi.String
	}
	if percentage.Valid {
		b.PositionPercentage = &percentage.Float64
	}
	b.CreatedAt = parseTime(createdRaw)
	b.UpdatedAt = parseTime(updatedRaw)
	return b, nil
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

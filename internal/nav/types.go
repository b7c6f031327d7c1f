package nav

import (
	"context"
	"time"
)

// NavItem is a node of the table of contents tree.
// An empty Href means the entry has no link target.
type NavItem struct {
	Label    string
	Href     string
	Children []NavItem
}

// Landmark is a semantically typed shortcut link. Type is free text supplied
// by the document (e.g. "bodymatter", "chapter", "titlepage").
type Landmark struct {
	Type  string
	Label string
	Href  string
}

// SpineItem is one entry of the linear reading order.
type SpineItem struct {
	Href  string
	Index int
}

// ChapterList is the ordered set of entries shown as chapters.
type ChapterList []NavItem

// Location is a point in the document as reported by the rendering engine.
type Location struct {
	CFI        string
	Href       string
	Percentage float64 // 0..1
}

// Bookmark is a persisted reading position.
type Bookmark struct {
	ID                 int64
	EbookID            string
	Name               string
	ChapterTitle       *string
	CFI                *string
	PositionPercentage *float64 // 0..100
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Renderer is the subset of the rendering engine's rendition used by the
// navigator and the bookmark resolver. Target is an href or a CFI; an empty
// target asks the engine for its default starting location.
type Renderer interface {
	Display(ctx context.Context, target string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
}

// Locations is the rendering engine's location index.
type Locations interface {
	Len() int
	Generate(ctx context.Context, granularity int) error
	CFIFromPercentage(p float64) (string, error)
}

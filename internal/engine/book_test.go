package engine

import (
	"reflect"
	"testing"

	"github.com/yuanying/epubnav/internal/nav"
)

func TestOpen(t *testing.T) {
	b := openTestBook(t)

	if b.ID() != "urn:isbn:9780000000001" {
		t.Errorf("ID() = %q", b.ID())
	}
	if b.Title() != "Engine Test" {
		t.Errorf("Title() = %q", b.Title())
	}

	wantTOC := []nav.NavItem{
		{Label: "One", Href: "text/chapter-1.xhtml", Children: []nav.NavItem{
			{Label: "Middle", Href: "text/chapter-1.xhtml#mid"},
		}},
		{Label: "Two", Href: "text/chapter-2.xhtml"},
	}
	if !reflect.DeepEqual(b.TOC(), wantTOC) {
		t.Errorf("TOC() = %+v, want %+v", b.TOC(), wantTOC)
	}

	wantLandmarks := []nav.Landmark{
		{Type: "cover", Label: "Cover", Href: "cover.xhtml"},
		{Type: "bodymatter", Label: "Begin", Href: "text/chapter-1.xhtml"},
	}
	if !reflect.DeepEqual(b.Landmarks(), wantLandmarks) {
		t.Errorf("Landmarks() = %+v, want %+v", b.Landmarks(), wantLandmarks)
	}

	wantSpine := []nav.SpineItem{
		{Href: "cover.xhtml", Index: 0},
		{Href: "text/chapter-1.xhtml", Index: 1},
		{Href: "text/chapter-2.xhtml", Index: 2},
	}
	if !reflect.DeepEqual(b.Spine(), wantSpine) {
		t.Errorf("Spine() = %+v, want %+v", b.Spine(), wantSpine)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/book.epub", nil); err == nil {
		t.Error("Open() expected error for missing file")
	}
}

func TestBookID_FallsBackToFileName(t *testing.T) {
	if got := bookID("  ", "/books/moby-dick.epub"); got != "moby-dick.epub" {
		t.Errorf("bookID() = %q", got)
	}
}

package nav

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func testSpine(hrefs ...string) []SpineItem {
	spine := make([]SpineItem, len(hrefs))
	for i, h := range hrefs {
		spine[i] = SpineItem{Href: h, Index: i}
	}
	return spine
}

func newTestNavigator(doc *DocumentContext, current string) (*Navigator, *fakeRenderer, *ReadingState) {
	state := &ReadingState{}
	state.Update(Location{Href: current}, "", false)
	r := &fakeRenderer{fail: map[string]bool{}}
	return NewNavigator(doc, state, r, nil), r, state
}

func TestNavigator_SpineTier(t *testing.T) {
	doc := NewDocumentContext(nil, nil, testSpine("Text/a.xhtml", "Text/b.xhtml", "Text/c.xhtml"))

	tests := []struct {
		name    string
		current string
		dir     Direction
		want    string
	}{
		{name: "next normalized", current: "Text/a.xhtml#p4", dir: Forward, want: "Text/b.xhtml"},
		{name: "previous exact", current: "Text/c.xhtml", dir: Backward, want: "Text/b.xhtml"},
		{name: "next by filename", current: "b.xhtml", dir: Forward, want: "Text/c.xhtml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, r, _ := newTestNavigator(doc, tt.current)
			tier, err := n.Step(context.Background(), tt.dir)
			if err != nil {
				t.Fatalf("Step() error = %v", err)
			}
			if tier != TierSpine {
				t.Errorf("tier = %q, want %q", tier, TierSpine)
			}
			if len(r.displayed) != 1 || r.displayed[0] != tt.want {
				t.Errorf("displayed = %v, want [%s]", r.displayed, tt.want)
			}
		})
	}
}

func TestNavigator_FallsThroughToChapters(t *testing.T) {
	toc := []NavItem{
		{Label: "One", Href: "one.xhtml", Children: []NavItem{
			{Label: "One-a", Href: "one.xhtml#a"},
		}},
		{Label: "Two", Href: "two.xhtml"},
	}
	// The spine does not contain the current document at all.
	doc := NewDocumentContext(toc, nil, testSpine("other.xhtml"))
	n, r, _ := newTestNavigator(doc, "two.xhtml")

	tier, err := n.Step(context.Background(), Backward)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if tier != TierChapters {
		t.Fatalf("tier = %q, want %q", tier, TierChapters)
	}
	if r.displayed[0] != "one.xhtml#a" {
		t.Errorf("displayed = %v, want [one.xhtml#a]", r.displayed)
	}
}

func TestNavigator_SpineDisplayErrorFallsThrough(t *testing.T) {
	toc := []NavItem{{Label: "A", Href: "a.xhtml"}, {Label: "B", Href: "b2.xhtml"}}
	doc := NewDocumentContext(toc, nil, testSpine("a.xhtml", "b.xhtml"))
	n, r, _ := newTestNavigator(doc, "a.xhtml")
	r.fail["b.xhtml"] = true

	tier, _ := n.Step(context.Background(), Forward)
	if tier != TierChapters {
		t.Fatalf("tier = %q, want %q", tier, TierChapters)
	}
	if r.displayed[0] != "b2.xhtml" {
		t.Errorf("displayed = %v, want [b2.xhtml]", r.displayed)
	}
}

func TestNavigator_EngineDefault(t *testing.T) {
	doc := NewDocumentContext(nil, nil, testSpine("a.xhtml"))
	n, r, _ := newTestNavigator(doc, "a.xhtml")

	if err := n.Next(context.Background()); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if err := n.Previous(context.Background()); err != nil {
		t.Fatalf("Previous() error = %v", err)
	}
	if r.nexts != 1 || r.prevs != 1 {
		t.Errorf("engine next/prev = %d/%d, want 1/1", r.nexts, r.prevs)
	}
	if len(r.displayed) != 0 {
		t.Errorf("displayed = %v, want none", r.displayed)
	}
}

func TestNavigator_AllTiersFailIsNoop(t *testing.T) {
	doc := NewDocumentContext(nil, nil, nil)
	n, r, _ := newTestNavigator(doc, "")
	r.engineErr = fmt.Errorf("at end")

	tier, err := n.Step(context.Background(), Forward)
	if err != nil {
		t.Fatalf("Step() error = %v, want nil", err)
	}
	if tier != "" {
		t.Errorf("tier = %q, want none", tier)
	}
}

func TestNavigator_CancelledContext(t *testing.T) {
	doc := NewDocumentContext(nil, nil, testSpine("a.xhtml", "b.xhtml"))
	n, r, _ := newTestNavigator(doc, "a.xhtml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := n.Step(ctx, Forward); err == nil {
		t.Fatal("Step() with cancelled context returned nil error")
	}
	if len(r.displayed) != 0 {
		t.Errorf("displayed = %v, want none", r.displayed)
	}
}

func TestNavigator_RoundTrip(t *testing.T) {
	hrefs := []string{"x/1.xhtml", "x/2.xhtml", "x/3.xhtml", "x/4.xhtml"}
	doc := NewDocumentContext(nil, nil, testSpine(hrefs...))

	// Boundaries are excluded: next from the last item has nowhere to go.
	for _, start := range hrefs[:len(hrefs)-1] {
		n, r, state := newTestNavigator(doc, start+"#frag")
		r.state = state

		if err := n.Next(context.Background()); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if err := n.Previous(context.Background()); err != nil {
			t.Fatalf("Previous() error = %v", err)
		}
		if got := NormalizeHref(state.Location().Href); got != start {
			t.Errorf("round trip from %q ended at %q", start, got)
		}
	}
}

func TestAdjacentHelpers(t *testing.T) {
	spine := testSpine("a.xhtml", "b.xhtml")
	if _, ok := AdjacentSpineHref(spine, "a.xhtml", Backward); ok {
		t.Error("AdjacentSpineHref before first item succeeded")
	}
	if _, ok := AdjacentSpineHref(spine, "b.xhtml", Forward); ok {
		t.Error("AdjacentSpineHref after last item succeeded")
	}

	items := []NavItem{{Href: "a.xhtml", Children: []NavItem{{Href: ""}, {Href: "a.xhtml#2"}}}, {Href: "b.xhtml"}}
	// a.xhtml#2 normalizes to a.xhtml, which matches the first entry.
	got, ok := AdjacentChapterHref(items, "a.xhtml#2", Forward)
	if !ok || got != "a.xhtml#2" {
		t.Errorf("AdjacentChapterHref() = (%q, %v), want (%q, true)", got, ok, "a.xhtml#2")
	}
	got, ok = AdjacentChapterHref(items, "b.xhtml", Backward)
	if !ok || got != "a.xhtml#2" {
		t.Errorf("AdjacentChapterHref() = (%q, %v), want (%q, true)", got, ok, "a.xhtml#2")
	}
}

func TestNavigator_GoTo(t *testing.T) {
	doc := NewDocumentContext(nil, nil, nil)
	n, r, _ := newTestNavigator(doc, "")

	if err := n.GoTo(context.Background(), ""); !errors.Is(err, ErrNoTarget) {
		t.Errorf("GoTo(\"\") error = %v, want ErrNoTarget", err)
	}
	if err := n.GoTo(context.Background(), "ch3.xhtml"); err != nil {
		t.Fatalf("GoTo() error = %v", err)
	}
	if r.displayed[0] != "ch3.xhtml" {
		t.Errorf("displayed = %v", r.displayed)
	}
}

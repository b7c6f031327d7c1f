package nav

import (
	"log/slog"

	"github.com/yuanying/epubnav/internal/logging"
)

// LabelFor resolves the human-readable label for href. The TOC is searched
// depth-first for an exact href match, then the landmarks. Hrefs are compared
// verbatim, fragments included.
func LabelFor(href string, toc []NavItem, landmarks []Landmark) (string, bool) {
	if href == "" {
		return "", false
	}
	if label, ok := findLabel(toc, href); ok {
		return label, true
	}
	for _, lm := range landmarks {
		if lm.Href == href {
			return lm.Label, true
		}
	}
	return "", false
}

func findLabel(items []NavItem, href string) (string, bool) {
	for _, item := range items {
		if item.Href == href {
			return item.Label, true
		}
		if label, ok := findLabel(item.Children, href); ok {
			return label, true
		}
	}
	return "", false
}

// Tracker keeps a ReadingState in sync with location-changed events.
type Tracker struct {
	doc    *DocumentContext
	state  *ReadingState
	logger *slog.Logger
}

// NewTracker creates a tracker writing into state.
func NewTracker(doc *DocumentContext, state *ReadingState, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{doc: doc, state: state, logger: logger}
}

// HandleLocationChanged is the location-changed event handler.
func (t *Tracker) HandleLocationChanged(loc Location) {
	prev, hadLabel := t.state.Label()
	label, ok := LabelFor(loc.Href, t.doc.TOC, t.doc.Landmarks)
	if !ok {
		// Keep showing the previous chapter while inside it.
		t.state.Carry(loc)
		return
	}
	t.state.Update(loc, label, true)
	if !hadLabel || label != prev {
		t.logger.Debug("chapter changed", "label", label, "href", loc.Href)
	}
}

// ChapterIndex returns the index of the chapter-list entry for the current
// location, or -1 when the location is outside every chapter.
func (t *Tracker) ChapterIndex() int {
	href := t.state.Location().Href
	hrefs := make([]string, len(t.doc.Chapters))
	for i, ch := range t.doc.Chapters {
		hrefs[i] = ch.Href
	}
	return indexOfHref(hrefs, href)
}

package nav

import "sync"

// DocumentContext holds the navigation data of one loaded document. It is
// built once per load and read-only afterwards.
type DocumentContext struct {
	TOC       []NavItem
	Landmarks []Landmark
	Spine     []SpineItem
	Chapters  ChapterList
}

// NewDocumentContext repairs mismatched TOC links and builds the chapter
// list. The supplied slices are not modified.
func NewDocumentContext(toc []NavItem, landmarks []Landmark, spine []SpineItem) *DocumentContext {
	corrected := CorrectLinks(toc)
	return &DocumentContext{
		TOC:       corrected,
		Landmarks: landmarks,
		Spine:     spine,
		Chapters:  BuildChapterList(corrected, landmarks),
	}
}

// InitialLocation returns the first reading position for the document.
func (d *DocumentContext) InitialLocation() (string, bool) {
	return InitialLocation(d.Landmarks, d.Chapters, d.Spine)
}

// InitialLocationCandidates returns every initial location in priority order.
func (d *DocumentContext) InitialLocationCandidates() []string {
	return InitialLocationCandidates(d.Landmarks, d.Chapters, d.Spine)
}

// ChapterHrefs returns the pre-order flattened, non-empty hrefs of the
// chapter list, or of the raw TOC when the chapter list is empty.
func (d *DocumentContext) ChapterHrefs() []string {
	src := []NavItem(d.Chapters)
	if len(src) == 0 {
		src = d.TOC
	}
	return flattenHrefs(nil, src)
}

func flattenHrefs(dst []string, items []NavItem) []string {
	for _, item := range items {
		if item.Href != "" {
			dst = append(dst, item.Href)
		}
		dst = flattenHrefs(dst, item.Children)
	}
	return dst
}

// ReadingState is the mutable reading position of a session. It is written by
// the location-changed handler and read by navigation and bookmark creation.
type ReadingState struct {
	mu       sync.Mutex
	location Location
	label    string
	hasLabel bool
	// resolved is false while label is carried over from an earlier location.
	resolved bool
}

// Update records a new location and its resolved chapter label.
func (s *ReadingState) Update(loc Location, label string, hasLabel bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
	s.label = label
	s.hasLabel = hasLabel
	s.resolved = hasLabel
}

// Carry records a location that has no label of its own. The previous label
// stays available for display but is no longer reported by ChapterTitle.
func (s *ReadingState) Carry(loc Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
	s.resolved = false
}

// SetPercentage updates the reading progress of the current location.
func (s *ReadingState) SetPercentage(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location.Percentage = p
}

// Location returns the last reported location.
func (s *ReadingState) Location() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Label returns the chapter label to display, which may be carried over from
// an earlier location.
func (s *ReadingState) Label() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label, s.hasLabel
}

// ChapterTitle returns the label resolved for the current location itself.
func (s *ReadingState) ChapterTitle() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resolved {
		return "", false
	}
	return s.label, s.hasLabel
}

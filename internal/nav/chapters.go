package nav

import "strings"

// minFilteredEntries is the number of top-level entries the filtered TOC must
// exceed before it is trusted over the raw TOC.
const minFilteredEntries = 3

var chapterLandmarkTypes = []string{"chapter", "text", "section", "scene", "part", "subchapter"}

var startLandmarkTypes = []string{"bodymatter", "chapter", "section", "scene", "part"}

var excludedStartLandmarkTypes = []string{
	"frontmatter",
	"titlepage",
	"toc",
	"imprint",
	"copyright",
	"cover",
	"dedication",
	"preface",
	"foreword",
	"acknowledg",
	"colophon",
	"halftitle",
	"epigraph",
}

var frontmatterFilePatterns = []string{
	"cover",
	"title",
	"toc",
	"nav",
	"contents",
	"copyright",
	"imprint",
	"dedication",
	"preface",
	"foreword",
	"acknowledg",
	"colophon",
	"epigraph",
	"frontmatter",
}

// BuildChapterList picks the chapter entries for a document. Chapter-typed
// landmarks win; otherwise the content-filtered TOC is used when enough of it
// survives, falling back to the raw TOC.
func BuildChapterList(toc []NavItem, landmarks []Landmark) ChapterList {
	if chapters := chapterLandmarks(landmarks); len(chapters) > 0 {
		return chapters
	}
	if len(toc) == 0 {
		return ChapterList{}
	}
	if filtered := FilterContent(toc); len(filtered) > minFilteredEntries {
		return filtered
	}
	return ChapterList(toc)
}

func chapterLandmarks(landmarks []Landmark) ChapterList {
	var out ChapterList
	for _, lm := range landmarks {
		if containsAny(strings.ToLower(lm.Type), chapterLandmarkTypes) {
			out = append(out, NavItem{Label: lm.Label, Href: lm.Href})
		}
	}
	return out
}

type startInput struct {
	landmarks []Landmark
	chapters  ChapterList
	spine     []SpineItem
}

var initialLocationStrategies = []Strategy[startInput, string]{
	{Name: "landmark", Run: startFromLandmarks},
	{Name: "chapters", Run: startFromChapters},
	{Name: "spine", Run: startFromSpine},
}

// InitialLocation returns the href of the first reading position. It reports
// false when no source resolves, in which case the engine's default starting
// location should be displayed.
func InitialLocation(landmarks []Landmark, chapters ChapterList, spine []SpineItem) (string, bool) {
	href, _, ok := initialLocation(landmarks, chapters, spine)
	return href, ok
}

// InitialLocationCandidates returns the result of every initial-location
// strategy in priority order, without duplicates. Callers that cannot display
// the first candidate try the next one.
func InitialLocationCandidates(landmarks []Landmark, chapters ChapterList, spine []SpineItem) []string {
	return AllOf(startInput{landmarks: landmarks, chapters: chapters, spine: spine}, initialLocationStrategies)
}

// initialLocation also returns the name of the strategy that resolved.
func initialLocation(landmarks []Landmark, chapters ChapterList, spine []SpineItem) (string, string, bool) {
	return FirstOf(startInput{landmarks: landmarks, chapters: chapters, spine: spine}, initialLocationStrategies)
}

func startFromLandmarks(in startInput) (string, bool) {
	for _, lm := range in.landmarks {
		t := strings.ToLower(lm.Type)
		if lm.Href == "" || !containsAny(t, startLandmarkTypes) || containsAny(t, excludedStartLandmarkTypes) {
			continue
		}
		return lm.Href, true
	}
	return "", false
}

func startFromChapters(in startInput) (string, bool) {
	for _, ch := range in.chapters {
		if ch.Href != "" {
			return ch.Href, true
		}
	}
	return "", false
}

func startFromSpine(in startInput) (string, bool) {
	for _, item := range in.spine {
		name := strings.ToLower(FilenameOf(item.Href))
		if name == "" || containsAny(name, frontmatterFilePatterns) {
			continue
		}
		return item.Href, true
	}
	return "", false
}

package nav

import "strings"

var frontmatterKeywords = []string{
	"title page",
	"imprint",
	"copyright",
	"dedication",
	"preface",
	"foreword",
	"introduction",
	"acknowledgments",
	"acknowledgements",
	"dramatis personae",
	"colophon",
	"table of contents",
}

var backmatterKeywords = []string{
	"index",
	"glossary",
	"appendix",
	"about the author",
	"about the publisher",
}

// IsFrontmatter reports whether a TOC label names a frontmatter section.
func IsFrontmatter(label string) bool {
	return containsAny(strings.ToLower(label), frontmatterKeywords)
}

// IsBackmatter reports whether a TOC label names a backmatter section.
func IsBackmatter(label string) bool {
	return containsAny(strings.ToLower(label), backmatterKeywords)
}

// FilterContent drops frontmatter and backmatter entries from a TOC tree.
// Children are filtered first; a non-content entry is kept only when at least
// one of its children survives. The input tree is not modified.
func FilterContent(toc []NavItem) []NavItem {
	out := make([]NavItem, 0, len(toc))
	for _, item := range toc {
		children := FilterContent(item.Children)
		if len(children) == 0 && (IsFrontmatter(item.Label) || IsBackmatter(item.Label)) {
			continue
		}
		out = append(out, NavItem{
			Label:    item.Label,
			Href:     item.Href,
			Children: children,
		})
	}
	return out
}

// containsAny reports whether s contains any of the lowercase needles.
func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

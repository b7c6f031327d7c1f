package nav

import (
	"regexp"
	"strings"
)

// CorrectionRule repairs a TOC entry whose target file contradicts its
// parent's file. Match receives the filenames of the child and the parent;
// Rewrite receives the parent's normalized href and the child's fragment.
type CorrectionRule struct {
	Name    string
	Match   func(childFile, parentFile string) bool
	Rewrite func(parentHref, fragment string) string
}

var numberedSectionPattern = regexp.MustCompile(`(?i)(act|chapter|ch)-(\d+)`)

// numberedSectionRule handles publishers that link a fragment into a sibling
// act/chapter file while the fragment itself belongs to the parent file.
var numberedSectionRule = CorrectionRule{
	Name: "numbered-section",
	Match: func(childFile, parentFile string) bool {
		c := numberedSectionPattern.FindStringSubmatch(childFile)
		p := numberedSectionPattern.FindStringSubmatch(parentFile)
		if c == nil || p == nil {
			return false
		}
		return strings.TrimLeft(c[2], "0") != strings.TrimLeft(p[2], "0")
	},
	Rewrite: func(parentHref, fragment string) string {
		return parentHref + "#" + fragment
	},
}

// DefaultCorrectionRules returns the rules applied when CorrectLinks is called
// without explicit rules.
func DefaultCorrectionRules() []CorrectionRule {
	return []CorrectionRule{numberedSectionRule}
}

// CorrectLinks walks the TOC top-down and rewrites entries whose fragment
// link points at the wrong file. The parent's corrected href is used when
// checking its children. Only entries with a fragment are considered, and
// the first matching rule wins. The input tree is not modified.
func CorrectLinks(toc []NavItem, rules ...CorrectionRule) []NavItem {
	if len(rules) == 0 {
		rules = DefaultCorrectionRules()
	}
	return correctLevel(toc, "", rules)
}

func correctLevel(items []NavItem, parentHref string, rules []CorrectionRule) []NavItem {
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	for i, item := range items {
		href := correctHref(item.Href, parentHref, rules)
		out[i] = NavItem{
			Label:    item.Label,
			Href:     href,
			Children: correctLevel(item.Children, href, rules),
		}
	}
	return out
}

func correctHref(href, parentHref string, rules []CorrectionRule) string {
	if href == "" || parentHref == "" {
		return href
	}
	_, fragment := splitFragment(href)
	if fragment == "" {
		return href
	}
	childFile := FilenameOf(href)
	parentFile := FilenameOf(parentHref)
	for _, rule := range rules {
		if rule.Match(childFile, parentFile) {
			return rule.Rewrite(NormalizeHref(parentHref), fragment)
		}
	}
	return href
}

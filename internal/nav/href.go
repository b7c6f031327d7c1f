package nav

import "strings"

// NormalizeHref strips the fragment identifier (everything from the first '#').
func NormalizeHref(href string) string {
	if href == "" {
		return ""
	}
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		return href[:idx]
	}
	return href
}

// FilenameOf returns the last path segment of the normalized href.
func FilenameOf(href string) string {
	p := NormalizeHref(href)
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		return p[idx+1:]
	}
	return p
}

// splitFragment splits an href into its path and fragment (without '#').
func splitFragment(href string) (path, fragment string) {
	path, fragment, _ = strings.Cut(href, "#")
	return path, fragment
}

// matchTier returns the tolerance tier at which candidate matches current:
// 0 for equal normalized hrefs (which covers raw equality), 1 when candidate
// contains the filename of current, -1 otherwise.
func matchTier(candidate, current string) int {
	if candidate == "" || current == "" {
		return -1
	}
	if NormalizeHref(candidate) == NormalizeHref(current) {
		return 0
	}
	if name := FilenameOf(current); name != "" && strings.Contains(candidate, name) {
		return 1
	}
	return -1
}

// indexOfHref finds current in hrefs. A stricter tier anywhere in the list
// wins over a looser tier at an earlier position.
func indexOfHref(hrefs []string, current string) int {
	for tier := 0; tier <= 1; tier++ {
		for i, h := range hrefs {
			if matchTier(h, current) == tier {
				return i
			}
		}
	}
	return -1
}

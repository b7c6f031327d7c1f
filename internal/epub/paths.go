package epub

import (
	"net/url"
	"path"
	"strings"
)

// splitFragment splits a source path into the path and fragment identifier.
func splitFragment(src string) (p, fragment string) {
	p, fragment, _ = strings.Cut(src, "#")
	return p, fragment
}

func joinFragment(p, fragment string) string {
	if fragment == "" {
		return p
	}
	return p + "#" + fragment
}

// resolveHref resolves href against baseDir (both package-relative) and
// returns the cleaned path and fragment. Percent-encoded paths are decoded.
// External links resolve to an empty path.
func resolveHref(baseDir, href string) (p, fragment string) {
	href = strings.TrimSpace(href)
	if href == "" || strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:") {
		return "", ""
	}
	p, fragment = splitFragment(href)
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	if p == "" {
		return "", fragment
	}
	if baseDir != "" && baseDir != "." && !strings.HasPrefix(p, "/") {
		p = path.Join(baseDir, p)
	}
	return normalizePath(p), fragment
}

// joinPath joins the OPF directory with a package-relative path to produce
// a zip path.
func joinPath(base, rel string) string {
	if base == "" || base == "." {
		return normalizePath(rel)
	}
	return normalizePath(path.Join(base, rel))
}

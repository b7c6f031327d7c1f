package epub

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseNAV parses an EPUB 3 navigation document and returns its table of
// contents and landmarks. baseDir is the package-relative directory of the
// nav document.
func parseNAV(content []byte, baseDir string) (toc []NavPoint, landmarks []Landmark, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse nav document: %w", err)
	}

	doc.Find("nav").Each(func(_ int, nav *goquery.Selection) {
		types := strings.Fields(nav.AttrOr("epub:type", ""))
		role := nav.AttrOr("role", "")
		switch {
		case toc == nil && (hasToken(types, "toc") || role == "doc-toc"):
			ol := nav.ChildrenFiltered("ol").First()
			if ol.Length() == 0 {
				ol = nav.Find("ol").First()
			}
			toc = parseNavList(ol, baseDir)
		case landmarks == nil && (hasToken(types, "landmarks") || role == "directory"):
			landmarks = parseLandmarks(nav, baseDir)
		}
	})

	return toc, landmarks, nil
}

// parseNavList converts an <ol> into nav points, recursing into nested lists.
func parseNavList(ol *goquery.Selection, baseDir string) []NavPoint {
	var points []NavPoint
	ol.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		np := NavPoint{}

		if a := li.ChildrenFiltered("a").First(); a.Length() > 0 {
			np.Label = collapseSpace(a.Text())
			np.ContentPath, np.Fragment = resolveHref(baseDir, a.AttrOr("href", ""))
		} else if span := li.ChildrenFiltered("span").First(); span.Length() > 0 {
			np.Label = collapseSpace(span.Text())
		}
		if nested := li.ChildrenFiltered("ol").First(); nested.Length() > 0 {
			np.Children = parseNavList(nested, baseDir)
		}
		if np.Label == "" && np.ContentPath == "" && len(np.Children) == 0 {
			return
		}
		points = append(points, np)
	})
	return points
}

func parseLandmarks(nav *goquery.Selection, baseDir string) []Landmark {
	out := []Landmark{}
	nav.Find("li > a").Each(func(_ int, a *goquery.Selection) {
		p, fragment := resolveHref(baseDir, a.AttrOr("href", ""))
		if p == "" {
			return
		}
		out = append(out, Landmark{
			Type:  strings.TrimSpace(a.AttrOr("epub:type", "")),
			Label: collapseSpace(a.Text()),
			Href:  joinFragment(p, fragment),
		})
	})
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

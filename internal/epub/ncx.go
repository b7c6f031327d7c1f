package epub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type ncxDocument struct {
	XMLName xml.Name `xml:"ncx"`
	NavMap  struct {
		NavPoints []ncxNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

type ncxNavPoint struct {
	ID       string `xml:"id,attr"`
	NavLabel struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

// parseNCX parses an EPUB 2 NCX document. baseDir is the package-relative
// directory of the NCX file, against which content sources are resolved.
func parseNCX(content []byte, baseDir string) ([]NavPoint, error) {
	var doc ncxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}
	return convertNavPoints(doc.NavMap.NavPoints, baseDir), nil
}

func convertNavPoints(points []ncxNavPoint, baseDir string) []NavPoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]NavPoint, 0, len(points))
	for _, np := range points {
		p, fragment := resolveHref(baseDir, np.Content.Src)
		out = append(out, NavPoint{
			Label:       strings.Join(strings.Fields(np.NavLabel.Text), " "),
			ContentPath: p,
			Fragment:    fragment,
			Children:    convertNavPoints(np.Children, baseDir),
		})
	}
	return out
}

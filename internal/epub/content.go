package epub

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Content holds the measurements of an XHTML content document. The parsed
// tree is not retained.
type Content struct {
	Href       string         // package-relative href
	TextLength int            // non-space rune count of the body text
	Anchors    map[string]int // element id -> text offset of the element
}

// LoadContent parses an XHTML content document and measures its text.
// href: package-relative href of the document
// content: XHTML file content
func LoadContent(href string, content []byte) (*Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XHTML: %w", err)
	}

	c := &Content{
		Href:    href,
		Anchors: map[string]int{},
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	for _, n := range root.Nodes {
		c.measure(n)
	}
	return c, nil
}

// measure walks n in document order, recording the text offset of every
// element id and accumulating the text length.
func (c *Content) measure(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.TextLength += textLength(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
		for _, attr := range n.Attr {
			if attr.Key != "id" || attr.Val == "" {
				continue
			}
			if _, seen := c.Anchors[attr.Val]; !seen {
				c.Anchors[attr.Val] = c.TextLength
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.measure(child)
	}
}

// AnchorOffset returns the text offset of the element with the given id.
// An empty fragment is the document start.
func (c *Content) AnchorOffset(fragment string) (int, bool) {
	if fragment == "" {
		return 0, true
	}
	off, ok := c.Anchors[fragment]
	return off, ok
}

func textLength(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

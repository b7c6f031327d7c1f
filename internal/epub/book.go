package epub

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Book is an opened publication with its package document and navigation
// metadata loaded.
type Book struct {
	reader     *Archive
	OPF        *OPF
	Navigation Navigation
}

// guideTypes maps EPUB 2 guide reference types onto EPUB 3 landmark
// vocabulary.
var guideTypes = map[string]string{
	"text":       "bodymatter",
	"title-page": "titlepage",
}

// Load opens the EPUB at name and parses its package and navigation
// documents. The caller must Close the returned book.
func Load(name string) (*Book, error) {
	r, err := Open(name)
	if err != nil {
		return nil, err
	}

	content, err := r.ReadFile(r.OPFPath())
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to read OPF: %w", err)
	}
	opf, err := ParseOPF(content, path.Dir(r.OPFPath()))
	if err != nil {
		r.Close()
		return nil, err
	}

	b := &Book{reader: r, OPF: opf}
	b.Navigation = b.loadNavigation()
	return b, nil
}

// Close releases the underlying archive.
func (b *Book) Close() error {
	return b.reader.Close()
}

// loadNavigation reads the EPUB 3 nav document and falls back to the NCX for
// the table of contents and to the guide for landmarks. Broken navigation
// files yield empty navigation rather than an error.
func (b *Book) loadNavigation() Navigation {
	var nav Navigation

	if b.OPF.NavHref != "" {
		if content, err := b.reader.ReadFile(b.OPF.Path(b.OPF.NavHref)); err == nil {
			toc, landmarks, err := parseNAV(content, dirOf(b.OPF.NavHref))
			if err == nil {
				if len(toc) > 0 {
					nav.Source = "nav"
					nav.TOC = toc
				}
				nav.Landmarks = landmarks
			}
		}
	}

	if len(nav.TOC) == 0 && b.OPF.NCXHref != "" {
		if content, err := b.reader.ReadFile(b.OPF.Path(b.OPF.NCXHref)); err == nil {
			if toc, err := parseNCX(content, dirOf(b.OPF.NCXHref)); err == nil && len(toc) > 0 {
				nav.Source = "ncx"
				nav.TOC = toc
			}
		}
	}

	if len(nav.Landmarks) == 0 {
		nav.Landmarks = guideLandmarks(b.OPF.Guide)
	}
	return nav
}

func guideLandmarks(refs []GuideReference) []Landmark {
	if len(refs) == 0 {
		return nil
	}
	out := make([]Landmark, 0, len(refs))
	for _, ref := range refs {
		typ := strings.ToLower(ref.Type)
		if mapped, ok := guideTypes[typ]; ok {
			typ = mapped
		}
		out = append(out, Landmark{Type: typ, Label: ref.Title, Href: ref.Href})
	}
	return out
}

// SpineHrefs returns the package-relative hrefs of the spine in reading
// order.
func (b *Book) SpineHrefs() []string {
	hrefs := make([]string, 0, len(b.OPF.Spine))
	for _, item := range b.OPF.Spine {
		hrefs = append(hrefs, item.Href)
	}
	return hrefs
}

// ReadContent loads the content document at a package-relative href.
// The fragment, if any, is ignored.
func (b *Book) ReadContent(href string) (*Content, error) {
	p, _ := splitFragment(href)
	if p == "" {
		return nil, fmt.Errorf("%w: empty href", ErrFileNotFound)
	}
	data, err := b.reader.ReadFile(b.OPF.Path(p))
	if err != nil {
		return nil, err
	}
	return LoadContent(p, data)
}

// IsNotFound reports whether err means a file is missing from the archive.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

func dirOf(href string) string {
	d := path.Dir(href)
	if d == "." {
		return ""
	}
	return d
}

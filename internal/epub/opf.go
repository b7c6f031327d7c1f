package epub

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// opfPackage represents the OPF XML structure
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
	Guide    opfGuide    `xml:"guide"`
}

type opfMetadata struct {
	Title      []string        `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator    []string        `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Language   []string        `xml:"http://purl.org/dc/elements/1.1/ language"`
	Identifier []opfIdentifier `xml:"http://purl.org/dc/elements/1.1/ identifier"`
}

type opfIdentifier struct {
	Value string `xml:",chardata"`
	ID    string `xml:"id,attr"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

type opfGuide struct {
	References []opfReference `xml:"reference"`
}

type opfReference struct {
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

// ParseOPF parses an OPF file. opfDir is the zip directory containing the
// OPF file (e.g. "OEBPS"); it is recorded but not prepended to hrefs.
func ParseOPF(content []byte, opfDir string) (*OPF, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse OPF XML: %w", err)
	}

	opf := &OPF{
		Version:  pkg.Version,
		Dir:      opfDir,
		Metadata: parseMetadata(&pkg.Metadata, pkg.UniqueID),
		Manifest: make(map[string]ManifestItem, len(pkg.Manifest.Items)),
	}

	for _, item := range pkg.Manifest.Items {
		href, _ := resolveHref("", item.Href)
		manifestItem := ManifestItem{
			ID:         item.ID,
			Href:       href,
			MediaType:  item.MediaType,
			Properties: strings.Fields(item.Properties),
		}
		opf.Manifest[item.ID] = manifestItem
		opf.ManifestOrder = append(opf.ManifestOrder, item.ID)

		if opf.NavHref == "" && hasToken(manifestItem.Properties, "nav") {
			opf.NavHref = href
		}
	}

	for _, itemRef := range pkg.Spine.ItemRefs {
		item, ok := opf.Manifest[itemRef.IDRef]
		if !ok {
			continue
		}
		opf.Spine = append(opf.Spine, SpineItem{
			IDRef:  itemRef.IDRef,
			Href:   item.Href,
			Linear: itemRef.Linear != "no",
		})
	}

	if pkg.Spine.Toc != "" {
		if ncxItem, ok := opf.Manifest[pkg.Spine.Toc]; ok {
			opf.NCXHref = ncxItem.Href
		}
	}
	if opf.NCXHref == "" {
		for _, id := range opf.ManifestOrder {
			if item := opf.Manifest[id]; item.MediaType == "application/x-dtbncx+xml" {
				opf.NCXHref = item.Href
				break
			}
		}
	}

	for _, ref := range pkg.Guide.References {
		p, fragment := resolveHref("", ref.Href)
		if p == "" {
			continue
		}
		opf.Guide = append(opf.Guide, GuideReference{
			Type:  strings.TrimSpace(ref.Type),
			Title: strings.TrimSpace(ref.Title),
			Href:  joinFragment(p, fragment),
		})
	}

	return opf, nil
}

// parseMetadata keeps the fields used to identify a book in the library.
func parseMetadata(meta *opfMetadata, uniqueID string) Metadata {
	md := Metadata{}
	if len(meta.Title) > 0 {
		md.Title = strings.TrimSpace(meta.Title[0])
	}
	if len(meta.Language) > 0 {
		md.Language = strings.TrimSpace(meta.Language[0])
	}
	for _, c := range meta.Creator {
		if c = strings.TrimSpace(c); c != "" {
			md.Creators = append(md.Creators, c)
		}
	}

	// Identifier (the one marked as unique-identifier, else the first)
	for _, id := range meta.Identifier {
		if id.ID == uniqueID {
			md.Identifier = strings.TrimSpace(id.Value)
			break
		}
	}
	if md.Identifier == "" && len(meta.Identifier) > 0 {
		md.Identifier = strings.TrimSpace(meta.Identifier[0].Value)
	}
	return md
}

// Path returns the zip path of a package-relative href (fragment dropped).
func (opf *OPF) Path(href string) string {
	p, _ := splitFragment(href)
	return joinPath(opf.Dir, p)
}

func hasToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

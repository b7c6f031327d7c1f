package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	epubMediaType    = "application/epub+zip"
	packageMediaType = "application/oebps-package+xml"
	containerPath    = "META-INF/container.xml"
)

var (
	ErrInvalidMimetype    = errors.New("invalid mimetype: must be 'application/epub+zip'")
	ErrMimetypeCompressed = errors.New("mimetype must not be compressed")
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
	ErrContainerNotFound  = errors.New("META-INF/container.xml not found")
	ErrOPFPathNotFound    = errors.New("OPF path not found in container.xml")
	ErrFileNotFound       = errors.New("file not found in EPUB")
)

// Archive is an opened EPUB container indexed by normalized zip path.
type Archive struct {
	closer  io.Closer
	entries map[string]*zip.File
	opfPath string
}

type containerDoc struct {
	Rootfiles []rootfile `xml:"rootfiles>rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// Open opens the EPUB at name, checks the mimetype entry and locates the
// package document through META-INF/container.xml.
func Open(name string) (*Archive, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	a := &Archive{closer: zr, entries: indexEntries(zr.File)}
	if err := a.checkMimetype(); err != nil {
		zr.Close()
		return nil, err
	}
	if a.opfPath, err = a.findPackage(); err != nil {
		zr.Close()
		return nil, err
	}
	return a, nil
}

func indexEntries(files []*zip.File) map[string]*zip.File {
	entries := make(map[string]*zip.File, len(files))
	for _, f := range files {
		if key := normalizePath(f.Name); key != "" {
			entries[key] = f
		}
	}
	return entries
}

// Close releases the archive.
func (a *Archive) Close() error {
	return a.closer.Close()
}

// OPFPath returns the zip path of the package document.
func (a *Archive) OPFPath() string {
	return a.opfPath
}

// Has reports whether the archive contains the given zip path.
func (a *Archive) Has(name string) bool {
	_, ok := a.entries[normalizePath(name)]
	return ok
}

// ReadFile returns the contents of the entry at the given zip path.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	key := normalizePath(name)
	f, ok := a.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", key, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (a *Archive) checkMimetype() error {
	f, ok := a.entries["mimetype"]
	switch {
	case !ok:
		return ErrMimetypeNotFound
	case f.Method != zip.Store:
		return ErrMimetypeCompressed
	}
	data, err := a.ReadFile("mimetype")
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}
	if strings.TrimSpace(string(data)) != epubMediaType {
		return ErrInvalidMimetype
	}
	return nil
}

// findPackage returns the first rootfile declared as a package document,
// or the first rootfile of any type.
func (a *Archive) findPackage() (string, error) {
	data, err := a.ReadFile(containerPath)
	if err != nil {
		return "", ErrContainerNotFound
	}
	var doc containerDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse container.xml: %w", err)
	}

	fallback := ""
	for _, rf := range doc.Rootfiles {
		p := normalizePath(rf.FullPath)
		if p == "" {
			continue
		}
		if rf.MediaType == packageMediaType || rf.MediaType == "" {
			return p, nil
		}
		if fallback == "" {
			fallback = p
		}
	}
	if fallback == "" {
		return "", ErrOPFPathNotFound
	}
	return fallback, nil
}

// normalizePath cleans a zip path ("./OEBPS//a.xhtml" -> "OEBPS/a.xhtml").
func normalizePath(p string) string {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "/")
}

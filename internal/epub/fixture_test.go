package epub

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const testContainer = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// writeTestEPUB writes an EPUB archive holding files (zip path -> content)
// plus an uncompressed mimetype entry and returns its path.
func writeTestEPUB(t *testing.T, files map[string]string) string {
	t.Helper()
	epubPath := filepath.Join(t.TempDir(), "test.epub")
	f, err := os.Create(epubPath)
	if err != nil {
		t.Fatalf("failed to create test epub: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	mw, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	mw.Write([]byte("application/epub+zip"))

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		fw.Write([]byte(files[name]))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	return epubPath
}

func xhtml(title, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>` + title + `</title></head>
<body>` + body + `</body>
</html>`
}

// epub3Files is a small EPUB 3 book with a nav document holding both the
// table of contents and landmarks.
func epub3Files() map[string]string {
	return map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf": `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:1234</dc:identifier>
    <dc:title>Test Book</dc:title>
    <dc:creator>Jane Doe</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="cover" href="text/cover.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch1" href="text/chapter-1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="text/chapter-2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="cover" linear="no"/>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`,
		"OEBPS/nav.xhtml": xhtml("Nav", `
<nav epub:type="toc" id="toc">
  <h1>Contents</h1>
  <ol>
    <li><a href="text/chapter-1.xhtml">Chapter  One</a>
      <ol>
        <li><a href="text/chapter-1.xhtml#s1">Scene 1</a></li>
      </ol>
    </li>
    <li><a href="text/chapter-2.xhtml">Chapter Two</a></li>
  </ol>
</nav>
<nav epub:type="landmarks">
  <ol>
    <li><a epub:type="cover" href="text/cover.xhtml">Cover</a></li>
    <li><a epub:type="bodymatter" href="text/chapter-1.xhtml">Start</a></li>
  </ol>
</nav>`),
		"OEBPS/text/cover.xhtml":     xhtml("Cover", `<p>Cover</p>`),
		"OEBPS/text/chapter-1.xhtml": xhtml("One", `<h1>One</h1><p id="s1">Hello, World!</p>`),
		"OEBPS/text/chapter-2.xhtml": xhtml("Two", `<h1>Two</h1><p>Goodbye.</p>`),
	}
}

// epub2Files is a small EPUB 2 book navigated by an NCX with a guide.
func epub2Files() map[string]string {
	return map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf": `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Old Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="title" href="title.xhtml" media-type="application/xhtml+xml"/>
    <item id="act1" href="act-1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="title"/>
    <itemref idref="act1"/>
  </spine>
  <guide>
    <reference type="title-page" title="Title" href="title.xhtml"/>
    <reference type="text" title="Begin" href="act-1.xhtml"/>
  </guide>
</package>`,
		"OEBPS/toc.ncx": `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="np1" playOrder="1">
      <navLabel><text>Title Page</text></navLabel>
      <content src="title.xhtml"/>
    </navPoint>
    <navPoint id="np2" playOrder="2">
      <navLabel><text>Act 1</text></navLabel>
      <content src="act-1.xhtml"/>
    </navPoint>
  </navMap>
</ncx>`,
		"OEBPS/title.xhtml": xhtml("Title", `<h1>Old Book</h1>`),
		"OEBPS/act-1.xhtml": xhtml("Act 1", `<h1>Act 1</h1><p>Enter the players.</p>`),
	}
}

package engine

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func page(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>t</title></head>
<body>` + body + `</body>
</html>`
}

// testBookFiles describes a three-section book: a non-linear cover,
// chapter-1 (10 characters, anchor "mid" at 5) and chapter-2 (25 characters).
var testBookFiles = []struct{ name, content string }{
	{"META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`},
	{"OEBPS/content.opf", `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:isbn:9780000000001</dc:identifier>
    <dc:title>Engine Test</dc:title>
  </metadata>
  <manifest>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>
    <item id="cover" href="cover.xhtml" media-type="application/xhtml+xml"/>
    <item id="c1" href="text/chapter-1.xhtml" media-type="application/xhtml+xml"/>
    <item id="c2" href="text/chapter-2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="cover" linear="no"/>
    <itemref idref="c1"/>
    <itemref idref="c2"/>
  </spine>
</package>`},
	{"OEBPS/nav.xhtml", page(`
<nav epub:type="toc"><ol>
  <li><a href="text/chapter-1.xhtml">One</a>
    <ol><li><a href="text/chapter-1.xhtml#mid">Middle</a></li></ol>
  </li>
  <li><a href="text/chapter-2.xhtml">Two</a></li>
</ol></nav>
<nav epub:type="landmarks"><ol>
  <li><a epub:type="cover" href="cover.xhtml">Cover</a></li>
  <li><a epub:type="bodymatter" href="text/chapter-1.xhtml">Begin</a></li>
</ol></nav>`)},
	{"OEBPS/cover.xhtml", page(`<p>Cover</p>`)},
	{"OEBPS/text/chapter-1.xhtml", page(`<p>abcde</p><p id="mid">fghij</p>`)},
	{"OEBPS/text/chapter-2.xhtml", page(`<p>abcdefghijklmnopqrstuvwxy</p>`)},
}

func writeTestBook(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(p)
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
	for _, file := range testBookFiles {
		fw, err := w.Create(file.name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", file.name, err)
		}
		fw.Write([]byte(file.content))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	return p
}

func openTestBook(t *testing.T) *Book {
	t.Helper()
	b, err := Open(writeTestBook(t), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

package epub

// OPF represents the parsed Open Package Format document.
// All hrefs are relative to the package directory (the directory holding
// the OPF file), which is how reading systems report them.
type OPF struct {
	Version       string
	Dir           string // zip path of the directory containing the OPF
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item
	ManifestOrder []string
	Spine         []SpineItem
	Guide         []GuideReference
	NCXHref       string
	NavHref       string
}

// Metadata represents the metadata section of the OPF
type Metadata struct {
	Title      string
	Creators   []string
	Language   string
	Identifier string
}

// ManifestItem represents an item in the manifest
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem represents an item reference in the spine
type SpineItem struct {
	IDRef  string
	Href   string
	Linear bool
}

// GuideReference is an EPUB 2 <guide> reference.
type GuideReference struct {
	Type  string
	Title string
	Href  string
}

// NavPoint represents a single entry of the table of contents.
type NavPoint struct {
	Label       string
	ContentPath string // fragment-free, package-relative
	Fragment    string // without '#'
	Children    []NavPoint
}

// Href returns the package-relative href including the fragment.
func (np NavPoint) Href() string {
	return joinFragment(np.ContentPath, np.Fragment)
}

// Landmark is a semantically typed entry from the nav document's landmarks
// list or from the EPUB 2 guide.
type Landmark struct {
	Type  string
	Label string
	Href  string
}

// Navigation holds the table of contents and landmarks of a publication.
type Navigation struct {
	Source    string // "nav", "ncx" or ""
	TOC       []NavPoint
	Landmarks []Landmark
}

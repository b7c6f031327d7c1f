package nav

import (
	"reflect"
	"testing"
)

func sampleTOC() []NavItem {
	return []NavItem{
		{Label: "Title Page", Href: "title.xhtml"},
		{Label: "Copyright", Href: "copyright.xhtml"},
		{Label: "Introduction", Href: "intro.xhtml", Children: []NavItem{
			{Label: "The Voyage Out", Href: "intro.xhtml#voyage"},
			{Label: "Acknowledgements", Href: "intro.xhtml#thanks"},
		}},
		{Label: "Chapter 1", Href: "ch1.xhtml"},
		{Label: "Chapter 2", Href: "ch2.xhtml", Children: []NavItem{
			{Label: "Glossary of Terms", Href: "ch2.xhtml#terms"},
		}},
		{Label: "Appendix A", Href: "appendix.xhtml"},
		{Label: "ABOUT THE AUTHOR", Href: "author.xhtml"},
	}
}

func TestFilterContent(t *testing.T) {
	got := FilterContent(sampleTOC())

	want := []NavItem{
		{Label: "Introduction", Href: "intro.xhtml", Children: []NavItem{
			{Label: "The Voyage Out", Href: "intro.xhtml#voyage"},
		}},
		{Label: "Chapter 1", Href: "ch1.xhtml", Children: []NavItem{}},
		{Label: "Chapter 2", Href: "ch2.xhtml", Children: []NavItem{}},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Label != want[i].Label || got[i].Href != want[i].Href {
			t.Errorf("entry[%d] = %q (%s), want %q (%s)", i, got[i].Label, got[i].Href, want[i].Label, want[i].Href)
		}
		if len(got[i].Children) != len(want[i].Children) {
			t.Errorf("entry[%d] children = %d, want %d", i, len(got[i].Children), len(want[i].Children))
		}
	}
}

func TestFilterContent_Idempotent(t *testing.T) {
	once := FilterContent(sampleTOC())
	twice := FilterContent(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("FilterContent is not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}

func TestFilterContent_RetainedNodesAreContentOrHaveChildren(t *testing.T) {
	var check func(items []NavItem)
	check = func(items []NavItem) {
		for _, item := range items {
			nonContent := IsFrontmatter(item.Label) || IsBackmatter(item.Label)
			if nonContent && len(item.Children) == 0 {
				t.Errorf("retained non-content entry %q without children", item.Label)
			}
			check(item.Children)
		}
	}
	check(FilterContent(sampleTOC()))
}

func TestFilterContent_DoesNotMutateInput(t *testing.T) {
	toc := sampleTOC()
	_ = FilterContent(toc)
	if !reflect.DeepEqual(toc, sampleTOC()) {
		t.Error("FilterContent modified its input")
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		label string
		front bool
		back  bool
	}{
		{label: "Dramatis Personae", front: true},
		{label: "Table of Contents", front: true},
		{label: "Foreword by the Editor", front: true},
		{label: "Index", back: true},
		{label: "About the Publisher", back: true},
		{label: "Chapter Seven"},
	}

	for _, tt := range tests {
		if got := IsFrontmatter(tt.label); got != tt.front {
			t.Errorf("IsFrontmatter(%q) = %v, want %v", tt.label, got, tt.front)
		}
		if got := IsBackmatter(tt.label); got != tt.back {
			t.Errorf("IsBackmatter(%q) = %v, want %v", tt.label, got, tt.back)
		}
	}
}

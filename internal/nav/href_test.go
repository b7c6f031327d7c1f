package nav

import "testing"

func TestNormalizeHref(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "empty", href: "", want: ""},
		{name: "no fragment", href: "Text/ch1.xhtml", want: "Text/ch1.xhtml"},
		{name: "fragment", href: "Text/ch1.xhtml#sec2", want: "Text/ch1.xhtml"},
		{name: "multiple hashes", href: "ch1.xhtml#a#b", want: "ch1.xhtml"},
		{name: "fragment only", href: "#top", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHref(tt.href)
			if got != tt.want {
				t.Errorf("NormalizeHref(%q) = %q, want %q", tt.href, got, tt.want)
			}
			if again := NormalizeHref(got); again != got {
				t.Errorf("NormalizeHref is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFilenameOf(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{href: "", want: ""},
		{href: "ch1.xhtml", want: "ch1.xhtml"},
		{href: "OEBPS/Text/ch1.xhtml#p3", want: "ch1.xhtml"},
		{href: "Text/", want: ""},
	}

	for _, tt := range tests {
		if got := FilenameOf(tt.href); got != tt.want {
			t.Errorf("FilenameOf(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestIndexOfHref_ToleranceOrder(t *testing.T) {
	hrefs := []string{"Text/part1/ch2.xhtml", "Text/ch1.xhtml", "Text/ch2.xhtml"}

	tests := []struct {
		name    string
		current string
		want    int
	}{
		{name: "normalized equality beats earlier substring", current: "Text/ch2.xhtml#p1", want: 2},
		{name: "exact", current: "Text/ch1.xhtml", want: 1},
		{name: "filename substring", current: "ch1.xhtml", want: 1},
		{name: "missing", current: "ch9.xhtml", want: -1},
		{name: "empty current", current: "", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indexOfHref(hrefs, tt.current); got != tt.want {
				t.Errorf("indexOfHref(%q) = %d, want %d", tt.current, got, tt.want)
			}
		})
	}
}

package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCFI is returned for CFI strings the engine cannot interpret.
var ErrInvalidCFI = errors.New("invalid CFI")

// Positions are addressed as a spine step plus a character offset into the
// section's text: epubcfi(/6/N!/4/1:offset), N = 2*(spineIndex+1).
var cfiPattern = regexp.MustCompile(`^epubcfi\(/6/(\d+)(?:\[[^\]]*\])?!((?:/\d+(?:\[[^\]]*\])?)*)(?::(\d+))?\)$`)

// FormatCFI returns the CFI of a character offset within a spine section.
func FormatCFI(spineIndex, offset int) string {
	return fmt.Sprintf("epubcfi(/6/%d!/4/1:%d)", 2*(spineIndex+1), offset)
}

// ParseCFI extracts the spine index and character offset from a CFI.
// A CFI without a character offset points at the section start.
func ParseCFI(cfi string) (spineIndex, offset int, err error) {
	m := cfiPattern.FindStringSubmatch(cfi)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCFI, cfi)
	}
	step, err := strconv.Atoi(m[1])
	if err != nil || step < 2 || step%2 != 0 {
		return 0, 0, fmt.Errorf("%w: spine step %s", ErrInvalidCFI, m[1])
	}
	if m[3] != "" {
		if offset, err = strconv.Atoi(m[3]); err != nil {
			return 0, 0, fmt.Errorf("%w: offset %s", ErrInvalidCFI, m[3])
		}
	}
	return step/2 - 1, offset, nil
}

// IsCFI reports whether target looks like a CFI rather than an href.
func IsCFI(target string) bool {
	return strings.HasPrefix(target, "epubcfi(")
}

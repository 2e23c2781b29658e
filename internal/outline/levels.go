package outline

import (
	"strings"
	"unicode/utf8"
)

// StyleCategory classifies a run's semantic style name for heading detection.
type StyleCategory int

const (
	// CategoryUnrecognized means the style carries no heading meaning; the
	// font-size fallback may still apply.
	CategoryUnrecognized StyleCategory = iota
	// CategoryExcluded suppresses the run entirely, font size included.
	CategoryExcluded
	CategoryChapter
	CategorySectionTitle
	CategoryHeading1
	CategoryHeading2
)

// Level maps a category to its TOC level. Zero means "not a TOC entry".
func (c StyleCategory) Level() int {
	switch c {
	case CategoryChapter, CategorySectionTitle:
		return 1
	case CategoryHeading1:
		return 2
	case CategoryHeading2:
		return 3
	}
	return 0
}

// reservedStyles are the exact names the renderer writes. Matching is
// case-insensitive on the full name, not a substring test, so a user style
// like "Appendix Title" still classifies as a section title below.
var reservedStyles = map[string]bool{
	"toc title":    true,
	"toc entry":    true,
	"index title":  true,
	"index letter": true,
	"index entry":  true,
}

// ClassifyStyle maps a style name to a heading category. Rules are
// case-insensitive substring matches, checked in suppression-first order so
// "Book Title" never falls through to the generic title rules.
func ClassifyStyle(name string) StyleCategory {
	if name == "" {
		return CategoryUnrecognized
	}
	lower := strings.ToLower(strings.TrimSpace(name))

	if reservedStyles[lower] {
		return CategoryExcluded
	}
	for _, deny := range []string{"book title", "part title", "subtitle", "author"} {
		if strings.Contains(lower, deny) {
			return CategoryExcluded
		}
	}
	if strings.Contains(lower, "chapter") {
		return CategoryChapter
	}
	for _, title := range []string{"toc title", "index title", "glossary title", "appendix title", "contents title"} {
		if strings.Contains(lower, title) {
			return CategorySectionTitle
		}
	}
	if strings.Contains(lower, "heading 1") {
		return CategoryHeading1
	}
	if strings.Contains(lower, "heading 2") || strings.Contains(lower, "heading 3") {
		return CategoryHeading2
	}
	return CategoryUnrecognized
}

// Font sizes treated as headings when no style says otherwise.
const (
	fallbackMinSize   = 18
	fallbackMaxSize   = 22
	fallbackLevel1Min = 20
	fallbackMaxTitle  = 100
)

// reservedTitles are section names a heading can never be called.
var reservedTitles = map[string]bool{
	"table of contents": true,
	"index":             true,
	"glossary":          true,
	"appendix":          true,
}

// fallbackLevel returns the TOC level for a run detected by font size alone,
// or 0 if the run does not qualify. Single characters are reserved for index
// letter dividers.
func fallbackLevel(text string, size float64) int {
	if size < fallbackMinSize || size > fallbackMaxSize {
		return 0
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) >= fallbackMaxTitle {
		return 0
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		return 0
	}
	if reservedTitles[strings.ToLower(trimmed)] {
		return 0
	}
	if size >= fallbackLevel1Min {
		return 1
	}
	return 2
}

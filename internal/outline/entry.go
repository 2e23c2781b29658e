// Package outline generates tables of contents and alphabetical indexes from
// attributed manuscript documents, and renders them back into the document.
package outline

import "github.com/quillpilot/folio/internal/document"

// Section titles for generated blocks. These exact strings are what the
// exclusion scan looks for, so they must match what the renderer emits.
const (
	TOCSectionTitle   = "Table of Contents"
	IndexSectionTitle = "Index"
)

// Reserved style names written by the renderer. Heading detection recognizes
// these and refuses to turn generated lines back into headings.
const (
	StyleTOCTitle    = "TOC Title"
	StyleTOCEntry    = "TOC Entry"
	StyleIndexTitle  = "Index Title"
	StyleIndexLetter = "Index Letter"
	StyleIndexEntry  = "Index Entry"
)

// TOCEntry is one detected heading. Level 1 is a chapter or major section,
// 2 a top-level heading, 3 a subsection.
type TOCEntry struct {
	Title string
	Level int
	Page  int
	Range document.Range
	Style string
}

// IndexEntry is one indexed term. Entries are unique by case-insensitive
// term; Pages is kept sorted and deduplicated.
type IndexEntry struct {
	Term     string
	Pages    []int
	Ranges   []document.Range
	Category string
}

// DefaultCategory is assigned to entries created from {{index:...}} markers.
const DefaultCategory = "General"

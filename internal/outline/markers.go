package outline

import (
	"regexp"
	"strings"

	"github.com/quillpilot/folio/internal/document"
)

// markerRegex matches inline {{index:term}} markers. Unbalanced braces
// simply fail to match; there is no error path.
var markerRegex = regexp.MustCompile(`\{\{index:([^}]+)\}\}`)

// GenerateIndexFromMarkers scans the document for {{index:term}} markers and
// merges each hit into the index. Markers inside previously generated Index
// sections are ignored. The full updated entry list is returned, not just
// the newly found entries.
func (m *Manager) GenerateIndexFromMarkers(doc *document.Document) []IndexEntry {
	text := doc.String()
	excluded := FindExcludedRanges(doc)
	indexSections := findSections(doc, IndexSectionTitle)

	for _, match := range markerRegex.FindAllStringSubmatchIndex(text, -1) {
		loc := match[0]
		if containsOffset(indexSections, loc) {
			continue
		}
		term := strings.TrimSpace(text[match[2]:match[3]])
		if term == "" {
			continue
		}
		r := document.Range{Loc: loc, Len: match[1] - loc}
		m.AddIndexEntry(term, r, EstimatePage(loc, excluded), DefaultCategory)
	}
	return m.Index
}

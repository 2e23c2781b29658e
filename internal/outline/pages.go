package outline

import "github.com/quillpilot/folio/internal/document"

// charsPerPage is the manuscript convention of roughly 3000 characters per
// page. Page numbers here are estimates, not layout-accurate pagination;
// they only need to be monotonic, 1-based, and insensitive to generated
// front matter.
const charsPerPage = 3000

// EstimatePage estimates the 1-based page number for a character offset.
// Excluded ranges lying entirely before the offset are subtracted first so
// that inserting a TOC does not shift every page reference after it.
func EstimatePage(offset int, excluded []document.Range) int {
	adjusted := offset
	for _, r := range excluded {
		if r.End() <= offset {
			adjusted -= r.Len
		}
	}
	if adjusted < 0 {
		adjusted = 0
	}
	return adjusted/charsPerPage + 1
}

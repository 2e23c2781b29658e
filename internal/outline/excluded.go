package outline

import (
	"sort"
	"strings"

	"github.com/quillpilot/folio/internal/document"
)

// sectionScanCap bounds the forward scan for a section terminator so a
// pathological document without one stays cheap to process.
const sectionScanCap = 5000

const sectionTerminator = "\n\n\n"

// sectionBodyMarkers end a generated section when real manuscript content
// resumes. This is a heuristic: the word "Chapter " appearing in prose right
// after a section title will truncate the detected range early. The reserved
// styles on rendered lines are the backstop when that happens.
var sectionBodyMarkers = []string{"Chapter ", "Part "}

// findSection locates the next generated section with the given title line,
// starting the search at from. The returned range covers the title through
// the terminator (a triple newline is consumed; a body marker is not). If no
// terminator appears within sectionScanCap characters the range ends at the
// cap.
func findSection(text, title string, from int) (document.Range, bool) {
	start := from
	for {
		i := strings.Index(text[start:], title)
		if i < 0 {
			return document.Range{}, false
		}
		loc := start + i
		if atLineStart(text, loc) {
			// Pull centering spaces into the range so removal leaves no
			// stray indentation behind.
			begin := loc
			for begin > 0 && text[begin-1] == ' ' {
				begin--
			}
			return document.Range{Loc: begin, Len: sectionEnd(text, loc+len(title)) - begin}, true
		}
		start = loc + len(title)
	}
}

// atLineStart reports whether only centering spaces precede loc on its line.
// Generated titles are centered, so a title match mid-prose does not count.
func atLineStart(text string, loc int) bool {
	for i := loc - 1; i >= 0; i-- {
		switch text[i] {
		case ' ':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// sectionEnd scans forward from the end of a section title for the earliest
// terminator, capped at sectionScanCap characters.
func sectionEnd(text string, titleEnd int) int {
	limit := titleEnd + sectionScanCap
	if limit > len(text) {
		limit = len(text)
	}
	window := text[titleEnd:limit]

	end := limit
	if i := strings.Index(window, sectionTerminator); i >= 0 {
		end = titleEnd + i + len(sectionTerminator)
	}
	for _, marker := range sectionBodyMarkers {
		if i := strings.Index(window, marker); i >= 0 && titleEnd+i < end {
			end = titleEnd + i
		}
	}
	return end
}

// FindExcludedRanges returns the spans of all previously generated TOC and
// Index sections, sorted by position. Scanning passes skip anything that
// intersects these so the table of contents never lists itself.
func FindExcludedRanges(doc *document.Document) []document.Range {
	text := doc.String()
	var out []document.Range
	for _, title := range []string{TOCSectionTitle, IndexSectionTitle} {
		from := 0
		for {
			r, ok := findSection(text, title, from)
			if !ok {
				break
			}
			out = append(out, r)
			from = r.End()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out
}

// findSections returns all generated sections with the given title.
func findSections(doc *document.Document, title string) []document.Range {
	text := doc.String()
	var out []document.Range
	from := 0
	for {
		r, ok := findSection(text, title, from)
		if !ok {
			return out
		}
		out = append(out, r)
		from = r.End()
	}
}

// RemoveAllSections deletes every generated section with the given title,
// repeating until none remain. Running an insert after this is what makes
// insertion replace rather than duplicate.
func RemoveAllSections(doc *document.Document, title string) int {
	removed := 0
	for {
		r, ok := findSection(doc.String(), title, 0)
		if !ok {
			return removed
		}
		doc.Delete(r)
		removed++
	}
}

func intersectsAny(r document.Range, ranges []document.Range) bool {
	for _, x := range ranges {
		if r.Intersects(x) {
			return true
		}
	}
	return false
}

func containsOffset(ranges []document.Range, off int) bool {
	for _, x := range ranges {
		if x.Contains(off) {
			return true
		}
	}
	return false
}

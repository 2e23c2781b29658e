package outline

import (
	"sort"
	"strings"

	"github.com/quillpilot/folio/internal/document"
)

// Manager holds the TOC and index state for one document session. It is a
// plain value owned by the caller, not shared process state, and is not safe
// for concurrent use.
type Manager struct {
	TOC        []TOCEntry
	Index      []IndexEntry
	PageFormat PageNumberFormat
	Layout     Layout
}

// NewManager creates a manager with arabic page numbers and the default
// layout.
func NewManager() *Manager {
	return &Manager{
		PageFormat: Arabic,
		Layout:     DefaultLayout(),
	}
}

// GenerateTOC scans the document for headings and replaces the manager's TOC
// with the result, sorted by document position. Style-tagged runs are
// detected first; large-font runs are a fallback that never overrides a
// style hit at the same location. Zero headings is a valid result, not an
// error.
func (m *Manager) GenerateTOC(doc *document.Document) []TOCEntry {
	excluded := FindExcludedRanges(doc)

	var entries []TOCEntry
	seen := make(map[int]bool)

	doc.EnumerateRuns(func(run document.Run, r document.Range) bool {
		if intersectsAny(r, excluded) {
			return true
		}
		level := ClassifyStyle(run.Style).Level()
		if level == 0 {
			return true
		}
		title := strings.TrimSpace(run.Text)
		if title == "" {
			return true
		}
		entries = append(entries, TOCEntry{
			Title: title,
			Level: level,
			Page:  EstimatePage(r.Loc, excluded),
			Range: r,
			Style: run.Style,
		})
		seen[r.Loc] = true
		return true
	})

	doc.EnumerateRuns(func(run document.Run, r document.Range) bool {
		if intersectsAny(r, excluded) || seen[r.Loc] {
			return true
		}
		// A denylisted style suppresses the run outright, whatever its size.
		if run.Style != "" && ClassifyStyle(run.Style) == CategoryExcluded {
			return true
		}
		level := fallbackLevel(run.Text, run.FontSize)
		if level == 0 {
			return true
		}
		entries = append(entries, TOCEntry{
			Title: strings.TrimSpace(run.Text),
			Level: level,
			Page:  EstimatePage(r.Loc, excluded),
			Range: r,
			Style: run.Style,
		})
		seen[r.Loc] = true
		return true
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Range.Loc < entries[j].Range.Loc
	})
	m.TOC = entries
	return entries
}

// AddIndexEntry merges a term into the index. Terms are unique ignoring
// case: an existing entry gains the page and range, a new entry is created
// with the given category ("General" when empty). The index stays sorted
// alphabetically, case-insensitive.
func (m *Manager) AddIndexEntry(term string, r document.Range, page int, category string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	if category == "" {
		category = DefaultCategory
	}

	for i := range m.Index {
		if strings.EqualFold(m.Index[i].Term, term) {
			e := &m.Index[i]
			if !containsPage(e.Pages, page) {
				e.Pages = append(e.Pages, page)
				sort.Ints(e.Pages)
			}
			if r.Len > 0 {
				e.Ranges = append(e.Ranges, r)
			}
			m.sortIndex()
			return
		}
	}

	entry := IndexEntry{
		Term:     term,
		Pages:    []int{page},
		Category: category,
	}
	if r.Len > 0 {
		entry.Ranges = append(entry.Ranges, r)
	}
	m.Index = append(m.Index, entry)
	m.sortIndex()
}

// RemoveIndexEntry deletes the entry at the given position. Out-of-range
// positions are ignored.
func (m *Manager) RemoveIndexEntry(i int) bool {
	if i < 0 || i >= len(m.Index) {
		return false
	}
	m.Index = append(m.Index[:i], m.Index[i+1:]...)
	return true
}

func (m *Manager) sortIndex() {
	sort.SliceStable(m.Index, func(i, j int) bool {
		return strings.ToLower(m.Index[i].Term) < strings.ToLower(m.Index[j].Term)
	})
}

func containsPage(pages []int, p int) bool {
	for _, x := range pages {
		if x == p {
			return true
		}
	}
	return false
}

package outline

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillpilot/folio/internal/document"
)

// Layout carries the host's line geometry for rendered blocks. Widths are
// display columns, measured with lipgloss so wide runes count correctly.
type Layout struct {
	LineWidth  int
	LeftIndent int
	// Margin is the fixed gap reserved between the leader dots and the
	// page number.
	Margin int
}

// DefaultLayout matches a standard 80-column manuscript page.
func DefaultLayout() Layout {
	return Layout{LineWidth: 80, LeftIndent: 0, Margin: 2}
}

const (
	titleFontSize  = 16
	letterFontSize = 14
	entryFontSize  = 12

	dotUnit = ". "
	minDots = 3

	levelIndent = "  "
)

// leaderLine lays out one entry line: title, leader dots sized to fill the
// gap, then the page string. At least three dots always render, even when
// the title is too wide for the line.
func (l Layout) leaderLine(title, page string) string {
	avail := l.LineWidth - l.LeftIndent - lipgloss.Width(title) - lipgloss.Width(page) - l.Margin
	dots := avail / lipgloss.Width(dotUnit)
	if dots < minDots {
		dots = minDots
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", l.LeftIndent))
	sb.WriteString(title)
	sb.WriteString(" ")
	sb.WriteString(strings.Repeat(dotUnit, dots))
	sb.WriteString(page)
	sb.WriteString("\n")
	return sb.String()
}

// centeredTitle pads a section title to the center of the line.
func (l Layout) centeredTitle(title string) string {
	pad := (l.LineWidth - lipgloss.Width(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + title + "\n"
}

// renderTOCRuns builds the styled block for the current TOC. Every line
// carries a reserved style so a later heading scan recognizes it as
// generated rather than treating it as a chapter heading.
func (m *Manager) renderTOCRuns() []document.Run {
	runs := []document.Run{
		{Text: m.Layout.centeredTitle(TOCSectionTitle), Style: StyleTOCTitle, FontSize: titleFontSize, Bold: true},
		{Text: "\n"},
	}
	for _, e := range m.TOC {
		indent := strings.Repeat(levelIndent, e.Level-1)
		line := m.Layout.leaderLine(indent+e.Title, m.PageFormat.Format(e.Page))
		runs = append(runs, document.Run{Text: line, Style: StyleTOCEntry, FontSize: entryFontSize})
	}
	runs = append(runs, document.Run{Text: "\n\n"})
	return runs
}

// renderIndexRuns builds the styled block for the current index. A bold
// single-letter divider opens each new initial as the alphabetical list is
// walked.
func (m *Manager) renderIndexRuns() []document.Run {
	runs := []document.Run{
		{Text: m.Layout.centeredTitle(IndexSectionTitle), Style: StyleIndexTitle, FontSize: titleFontSize, Bold: true},
		{Text: "\n"},
	}
	lastLetter := ""
	for _, e := range m.Index {
		letter := indexLetter(e.Term)
		if letter != lastLetter {
			runs = append(runs, document.Run{Text: letter + "\n", Style: StyleIndexLetter, FontSize: letterFontSize, Bold: true})
			lastLetter = letter
		}
		pages := make([]string, len(e.Pages))
		for i, p := range e.Pages {
			pages[i] = m.PageFormat.Format(p)
		}
		line := m.Layout.leaderLine(e.Term, strings.Join(pages, ", "))
		runs = append(runs, document.Run{Text: line, Style: StyleIndexEntry, FontSize: entryFontSize})
	}
	runs = append(runs, document.Run{Text: "\n\n"})
	return runs
}

// indexLetter returns the case-folded initial used for group dividers.
func indexLetter(term string) string {
	for _, r := range term {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// InsertTOC removes any previously generated TOC block, then inserts a fresh
// one at the given offset as a single mutation. The inserted character count
// is returned.
func (m *Manager) InsertTOC(doc *document.Document, at int) int {
	RemoveAllSections(doc, TOCSectionTitle)
	return insertRuns(doc, at, m.renderTOCRuns())
}

// InsertIndex removes any previously generated Index block, then inserts a
// fresh one at the given offset.
func (m *Manager) InsertIndex(doc *document.Document, at int) int {
	RemoveAllSections(doc, IndexSectionTitle)
	return insertRuns(doc, at, m.renderIndexRuns())
}

func insertRuns(doc *document.Document, at int, runs []document.Run) int {
	if at < 0 {
		at = 0
	}
	if at > doc.Length() {
		at = doc.Length()
	}
	// The section title must start its own line or the exclusion scan will
	// never see the block again.
	if at > 0 && doc.Substring(document.Range{Loc: at - 1, Len: 1}) != "\n" {
		runs = append([]document.Run{{Text: "\n"}}, runs...)
	}
	doc.Insert(at, runs...)
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	return n
}

package outline

import (
	"strings"
	"testing"

	"github.com/quillpilot/folio/internal/document"
)

func TestLeaderLine(t *testing.T) {
	l := DefaultLayout() // 80 columns, margin 2

	t.Run("dots fill the gap", func(t *testing.T) {
		line := l.leaderLine("Intro", "1")
		// avail = 80 - 5 - 1 - 2 = 72 columns, 36 dot units
		if got := strings.Count(line, "."); got != 36 {
			t.Errorf("dot count = %d, want 36", got)
		}
		if !strings.HasPrefix(line, "Intro ") {
			t.Errorf("line = %q, want Intro prefix", line)
		}
		if !strings.HasSuffix(line, "1\n") {
			t.Errorf("line = %q, want page suffix", line)
		}
	})

	t.Run("wider page string means fewer dots", func(t *testing.T) {
		narrow := strings.Count(l.leaderLine("Intro", "MCMXCIV"), ".")
		wide := strings.Count(l.leaderLine("Intro", "1"), ".")
		if narrow >= wide {
			t.Errorf("dots with wide page = %d, with narrow = %d; want fewer", narrow, wide)
		}
	})

	t.Run("minimum of three dots", func(t *testing.T) {
		line := l.leaderLine(strings.Repeat("x", 90), "1")
		if got := strings.Count(line, "."); got != 3 {
			t.Errorf("dot count = %d, want 3", got)
		}
	})

	t.Run("left indent narrows the line", func(t *testing.T) {
		indented := Layout{LineWidth: 80, LeftIndent: 4, Margin: 2}
		line := indented.leaderLine("Intro", "1")
		if !strings.HasPrefix(line, "    Intro") {
			t.Errorf("line = %q, want four-space indent", line)
		}
		if got := strings.Count(line, "."); got != 34 {
			t.Errorf("dot count = %d, want 34", got)
		}
	})
}

func TestCenteredTitle(t *testing.T) {
	l := DefaultLayout()
	line := l.centeredTitle(TOCSectionTitle)

	if !strings.HasSuffix(line, TOCSectionTitle+"\n") {
		t.Errorf("line = %q, want centered title", line)
	}
	pad := len(line) - len(TOCSectionTitle) - 1
	if pad != (80-len(TOCSectionTitle))/2 {
		t.Errorf("padding = %d columns, want %d", pad, (80-len(TOCSectionTitle))/2)
	}
}

func TestInsertTOCIdempotent(t *testing.T) {
	doc := chapterDoc()
	mgr := NewManager()
	mgr.GenerateTOC(doc)

	mgr.InsertTOC(doc, 0)
	lenAfterFirst := doc.Length()

	mgr.InsertTOC(doc, 0)
	lenAfterSecond := doc.Length()

	if got := strings.Count(doc.String(), TOCSectionTitle); got != 1 {
		t.Errorf("document contains %d TOC blocks, want 1", got)
	}
	if lenAfterFirst != lenAfterSecond {
		t.Errorf("length changed on re-insert: %d -> %d", lenAfterFirst, lenAfterSecond)
	}
}

func TestInsertTOCTagsReservedStyles(t *testing.T) {
	doc := chapterDoc()
	mgr := NewManager()
	mgr.GenerateTOC(doc)
	mgr.InsertTOC(doc, 0)

	var styles []string
	doc.EnumerateRuns(func(run document.Run, r document.Range) bool {
		if run.Style == StyleTOCTitle || run.Style == StyleTOCEntry {
			styles = append(styles, run.Style)
		}
		return true
	})

	if len(styles) != 4 { // title + 3 entries
		t.Fatalf("got %d reserved-style runs, want 4", len(styles))
	}
	if styles[0] != StyleTOCTitle {
		t.Errorf("first reserved run = %q, want %q", styles[0], StyleTOCTitle)
	}
}

func TestInsertIndexIdempotentAfterNewTerm(t *testing.T) {
	doc := document.FromString(strings.Repeat("calm prose without markers. ", 30))
	mgr := NewManager()
	mgr.AddIndexEntry("dragons", document.Range{}, 1, "")

	mgr.InsertIndex(doc, doc.Length())
	firstLen := doc.Length()

	mgr.AddIndexEntry("wyverns", document.Range{}, 2, "")
	mgr.InsertIndex(doc, doc.Length())

	if got := strings.Count(doc.String(), IndexSectionTitle+"\n"); got != 1 {
		t.Errorf("document contains %d Index blocks, want 1", got)
	}

	// One extra entry line plus its W divider, nothing stacked.
	extra := len(mgr.Layout.leaderLine("wyverns", mgr.PageFormat.Format(2))) + len("W\n")
	if got, want := doc.Length(), firstLen+extra; got != want {
		t.Errorf("length after second insert = %d, want %d", got, want)
	}
}

func TestRenderIndexLetterDividers(t *testing.T) {
	doc := document.FromString("prose body without any markers")
	mgr := NewManager()
	mgr.AddIndexEntry("apple", document.Range{}, 1, "")
	mgr.AddIndexEntry("avocado", document.Range{}, 2, "")
	mgr.AddIndexEntry("banana", document.Range{}, 3, "")

	mgr.InsertIndex(doc, doc.Length())
	text := doc.String()

	if got := strings.Count(text, "\nA\n"); got != 1 {
		t.Errorf("found %d A dividers, want 1", got)
	}
	if got := strings.Count(text, "\nB\n"); got != 1 {
		t.Errorf("found %d B dividers, want 1", got)
	}
	if !strings.Contains(text, "\nA\napple") {
		t.Error("apple should follow the A divider")
	}

	var letters []string
	doc.EnumerateRuns(func(run document.Run, r document.Range) bool {
		if run.Style == StyleIndexLetter {
			letters = append(letters, strings.TrimSpace(run.Text))
		}
		return true
	})
	if len(letters) != 2 || letters[0] != "A" || letters[1] != "B" {
		t.Errorf("letter dividers = %v, want [A B]", letters)
	}
}

func TestRenderUsesPageFormat(t *testing.T) {
	doc := document.FromString("short body text for the test")
	mgr := NewManager()
	mgr.PageFormat = RomanUpper
	mgr.AddIndexEntry("dragons", document.Range{}, 4, "")

	mgr.InsertIndex(doc, doc.Length())
	if !strings.Contains(doc.String(), "IV\n") {
		t.Errorf("index block missing roman page number: %q", doc.String())
	}
}

func TestInsertTOCPreservesBody(t *testing.T) {
	doc := chapterDoc()
	body := doc.String()
	mgr := NewManager()
	mgr.GenerateTOC(doc)
	mgr.InsertTOC(doc, 0)

	if !strings.HasSuffix(doc.String(), body) {
		t.Error("insertion at the top should leave the body untouched")
	}
}

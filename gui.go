//go:build gui

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/quillpilot/folio/internal/document"
	"github.com/quillpilot/folio/internal/loader"
	"github.com/quillpilot/folio/internal/outline"
	"github.com/quillpilot/folio/internal/state"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type guiModel struct {
	mgr      *outline.Manager
	doc      *document.Document
	filename string
	outPath  string

	store    *state.Store
	fileHash string

	selectedIndex int
}

func (g *guiModel) regenerate() {
	g.mgr.GenerateTOC(g.doc)
	g.mgr.GenerateIndexFromMarkers(g.doc)
}

func (g *guiModel) tocLine(i int) string {
	e := g.mgr.TOC[i]
	indent := strings.Repeat("    ", e.Level-1)
	return fmt.Sprintf("%s%s  —  p. %s", indent, e.Title, g.mgr.PageFormat.Format(e.Page))
}

func (g *guiModel) indexLine(i int) string {
	e := g.mgr.Index[i]
	pages := make([]string, len(e.Pages))
	for n, p := range e.Pages {
		pages[n] = g.mgr.PageFormat.Format(p)
	}
	return fmt.Sprintf("%s  —  %s (%s)", e.Term, strings.Join(pages, ", "), e.Category)
}

func (g *guiModel) insertAndExport() error {
	g.regenerate()
	g.mgr.InsertTOC(g.doc, 0)
	g.mgr.InsertIndex(g.doc, g.doc.Length())
	return os.WriteFile(g.outPath, []byte(g.doc.String()), 0644)
}

func (g *guiModel) saveSession() {
	if g.store == nil || g.fileHash == "" {
		return
	}
	sess := state.Session{PageFormat: g.mgr.PageFormat.String()}
	for _, e := range g.mgr.Index {
		if len(e.Ranges) > 0 {
			continue
		}
		page := 1
		if len(e.Pages) > 0 {
			page = e.Pages[0]
		}
		sess.Terms = append(sess.Terms, state.SavedTerm{Term: e.Term, Category: e.Category, Page: page})
	}
	_ = g.store.SaveSession(g.fileHash, sess)
}

func main() {
	format := flag.String("f", "arabic", "Page number format: arabic, roman, roman-upper, alpha, alpha-upper")
	outPath := flag.String("o", "", "Export path (default: <file>_folio.txt)")
	showVersion := flag.Bool("v", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("folio %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input provided. Usage: folio [options] <file>")
		os.Exit(1)
	}

	filename := flag.Arg(0)
	doc, err := loader.LoadDocument(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load '%s': %v\n", filename, err)
		os.Exit(1)
	}

	pageFormat, err := outline.ParsePageNumberFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr := outline.NewManager()
	mgr.PageFormat = pageFormat

	out := *outPath
	if out == "" {
		ext := filepath.Ext(filename)
		out = strings.TrimSuffix(filename, ext) + "_folio.txt"
	}

	g := &guiModel{mgr: mgr, doc: doc, filename: filename, outPath: out, selectedIndex: -1}

	if store, err := state.NewStore(); err == nil {
		if hash, err := state.ComputeHash(filename); err == nil {
			g.store = store
			g.fileHash = hash
			if sess, ok := store.Session(hash); ok {
				if f, err := outline.ParsePageNumberFormat(sess.PageFormat); err == nil {
					g.mgr.PageFormat = f
				}
				for _, t := range sess.Terms {
					g.mgr.AddIndexEntry(t.Term, document.Range{}, t.Page, t.Category)
				}
			}
		}
	}

	g.regenerate()

	a := app.New()
	w := a.NewWindow("Folio - " + filepath.Base(filename))
	w.Resize(fyne.NewSize(700, 500))

	status := widget.NewLabel("")
	updateStatus := func(msg string) {
		if msg == "" {
			msg = fmt.Sprintf("%d headings | %d terms | pages: %s",
				len(g.mgr.TOC), len(g.mgr.Index), g.mgr.PageFormat)
		}
		status.SetText(msg)
	}

	tocList := widget.NewList(
		func() int { return len(g.mgr.TOC) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(g.tocLine(i))
		},
	)

	indexList := widget.NewList(
		func() int { return len(g.mgr.Index) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(g.indexLine(i))
		},
	)
	indexList.OnSelected = func(id widget.ListItemID) {
		g.selectedIndex = id
	}

	refresh := func() {
		tocList.Refresh()
		indexList.Refresh()
		updateStatus("")
	}

	termEntry := widget.NewEntry()
	termEntry.SetPlaceHolder("term or term:page")

	addBtn := widget.NewButton("Add Term", func() {
		term, page := parseTermInput(termEntry.Text)
		if term == "" {
			return
		}
		g.mgr.AddIndexEntry(term, document.Range{}, page, "")
		termEntry.SetText("")
		refresh()
	})

	removeBtn := widget.NewButton("Remove Term", func() {
		if g.mgr.RemoveIndexEntry(g.selectedIndex) {
			g.selectedIndex = -1
			indexList.UnselectAll()
			refresh()
		}
	})

	regenBtn := widget.NewButton("Regenerate", func() {
		g.regenerate()
		refresh()
	})

	formatBtn := widget.NewButton("Page Format", func() {
		g.mgr.PageFormat = g.mgr.PageFormat.Next()
		refresh()
	})

	exportBtn := widget.NewButton("Insert & Export", func() {
		if err := g.insertAndExport(); err != nil {
			updateStatus("Export failed: " + err.Error())
			return
		}
		updateStatus(fmt.Sprintf("Wrote %s (%d chars)", g.outPath, g.doc.Length()))
	})

	tabs := container.NewAppTabs(
		container.NewTabItem("Table of Contents", tocList),
		container.NewTabItem("Index", indexList),
	)

	toolbar := container.NewHBox(regenBtn, formatBtn, exportBtn, removeBtn)
	addRow := container.NewBorder(nil, nil, nil, addBtn, termEntry)
	top := container.NewVBox(toolbar, addRow)

	w.SetContent(container.NewBorder(top, status, nil, nil, tabs))
	w.SetCloseIntercept(func() {
		g.saveSession()
		w.Close()
	})

	updateStatus("")
	w.ShowAndRun()
}

// parseTermInput splits "dragons:4" into term and page, defaulting to page 1.
func parseTermInput(s string) (string, int) {
	s = strings.TrimSpace(s)
	term, pageStr, found := strings.Cut(s, ":")
	term = strings.TrimSpace(term)
	if !found {
		return term, 1
	}
	var page int
	if _, err := fmt.Sscanf(strings.TrimSpace(pageStr), "%d", &page); err != nil || page < 1 {
		return term, 1
	}
	return term, page
}

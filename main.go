//go:build !gui

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

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

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Padding(0, 1)
)

const (
	tabTOC = iota
	tabIndex
)

type tocItem struct {
	entry  outline.TOCEntry
	format outline.PageNumberFormat
}

func (i tocItem) Title() string {
	return strings.Repeat("  ", i.entry.Level-1) + i.entry.Title
}

func (i tocItem) Description() string {
	label := i.entry.Style
	if label == "" {
		label = "large font"
	}
	return fmt.Sprintf("Page %s · %s", i.format.Format(i.entry.Page), label)
}

func (i tocItem) FilterValue() string { return i.entry.Title }

type indexItem struct {
	entry  outline.IndexEntry
	format outline.PageNumberFormat
}

func (i indexItem) Title() string { return i.entry.Term }

func (i indexItem) Description() string {
	pages := make([]string, len(i.entry.Pages))
	for n, p := range i.entry.Pages {
		pages[n] = i.format.Format(p)
	}
	return fmt.Sprintf("Pages %s · %s", strings.Join(pages, ", "), i.entry.Category)
}

func (i indexItem) FilterValue() string { return i.entry.Term }

type model struct {
	mgr      *outline.Manager
	doc      *document.Document
	filename string
	outPath  string

	tocList   list.Model
	indexList list.Model
	input     textinput.Model
	adding    bool
	activeTab int
	message   string

	store    *state.Store
	fileHash string

	width    int
	height   int
	quitting bool
}

func newModel(doc *document.Document, mgr *outline.Manager, filename, outPath string) model {
	delegate := list.NewDefaultDelegate()

	tocList := list.New(nil, delegate, 80, 20)
	tocList.Title = "Table of Contents"
	tocList.SetShowHelp(false)

	indexList := list.New(nil, delegate, 80, 20)
	indexList.Title = "Index"
	indexList.SetShowHelp(false)

	input := textinput.New()
	input.Placeholder = "term or term:page"

	m := model{
		mgr:       mgr,
		doc:       doc,
		filename:  filename,
		outPath:   outPath,
		tocList:   tocList,
		indexList: indexList,
		input:     input,
		width:     80,
		height:    24,
	}
	m.regenerate()
	return m
}

func (m *model) regenerate() {
	m.mgr.GenerateTOC(m.doc)
	m.mgr.GenerateIndexFromMarkers(m.doc)
	m.refreshItems()
}

func (m *model) refreshItems() {
	tocItems := make([]list.Item, len(m.mgr.TOC))
	for i, e := range m.mgr.TOC {
		tocItems[i] = tocItem{entry: e, format: m.mgr.PageFormat}
	}
	m.tocList.SetItems(tocItems)

	indexItems := make([]list.Item, len(m.mgr.Index))
	for i, e := range m.mgr.Index {
		indexItems[i] = indexItem{entry: e, format: m.mgr.PageFormat}
	}
	m.indexList.SetItems(indexItems)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "enter":
				term, page := parseTermInput(m.input.Value())
				if term != "" {
					m.mgr.AddIndexEntry(term, document.Range{}, page, "")
					m.refreshItems()
					m.message = fmt.Sprintf("Added %q to index", term)
				}
				m.adding = false
				m.input.Reset()
				m.input.Blur()
				return m, nil
			case "esc":
				m.adding = false
				m.input.Reset()
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "tab":
			if m.activeTab == tabTOC {
				m.activeTab = tabIndex
			} else {
				m.activeTab = tabTOC
			}
			return m, nil

		case "r":
			m.regenerate()
			m.message = fmt.Sprintf("Regenerated: %d headings, %d terms", len(m.mgr.TOC), len(m.mgr.Index))
			return m, nil

		case "p":
			m.mgr.PageFormat = m.mgr.PageFormat.Next()
			m.refreshItems()
			m.message = "Page numbers: " + m.mgr.PageFormat.String()
			return m, nil

		case "a":
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink

		case "d":
			if m.activeTab == tabIndex {
				if m.mgr.RemoveIndexEntry(m.indexList.Index()) {
					m.refreshItems()
					m.message = "Index entry removed"
				}
			}
			return m, nil

		case "i":
			m.insertAndExport()
			return m, nil

		case "q", "Q", "ctrl+c":
			m.saveSession()
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines: 1 for status at top, 1 for controls at bottom
		m.tocList.SetSize(msg.Width, msg.Height-2)
		m.indexList.SetSize(msg.Width, msg.Height-2)
		return m, nil
	}

	var cmd tea.Cmd
	if m.activeTab == tabTOC {
		m.tocList, cmd = m.tocList.Update(msg)
	} else {
		m.indexList, cmd = m.indexList.Update(msg)
	}
	return m, cmd
}

func (m *model) insertAndExport() {
	m.mgr.GenerateTOC(m.doc)
	m.mgr.GenerateIndexFromMarkers(m.doc)
	m.mgr.InsertTOC(m.doc, 0)
	m.mgr.InsertIndex(m.doc, m.doc.Length())
	if err := os.WriteFile(m.outPath, []byte(m.doc.String()), 0644); err != nil {
		m.message = "Export failed: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("Wrote %s (%d chars)", m.outPath, m.doc.Length())
}

// saveSession persists manual index terms and the page format. Terms found
// by marker scanning carry document ranges; manual ones do not, and only
// those need saving.
func (m *model) saveSession() {
	if m.store == nil || m.fileHash == "" {
		return
	}
	sess := state.Session{PageFormat: m.mgr.PageFormat.String()}
	for _, e := range m.mgr.Index {
		if len(e.Ranges) > 0 {
			continue
		}
		page := 1
		if len(e.Pages) > 0 {
			page = e.Pages[0]
		}
		sess.Terms = append(sess.Terms, state.SavedTerm{Term: e.Term, Category: e.Category, Page: page})
	}
	_ = m.store.SaveSession(m.fileHash, sess)
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	status := statusStyle.Render(fmt.Sprintf("%s | %d headings | %d terms | pages: %s",
		filepath.Base(m.filename),
		len(m.mgr.TOC),
		len(m.mgr.Index),
		m.mgr.PageFormat,
	))
	if m.message != "" {
		status += " " + messageStyle.Render(m.message)
	}

	var body string
	if m.adding {
		body = promptStyle.Render("Add index term: ") + m.input.View()
	} else if m.activeTab == tabTOC {
		body = m.tocList.View()
	} else {
		body = m.indexList.View()
	}

	controls := controlsStyle.Render("TAB: toc/index  r: regenerate  p: page format  a: add term  d: delete term  i: insert+export  q: quit")

	return status + "\n" + body + "\n" + controls
}

// parseTermInput splits "dragons:4" into term and page. A missing or bad
// page defaults to 1.
func parseTermInput(s string) (string, int) {
	s = strings.TrimSpace(s)
	term, pageStr, found := strings.Cut(s, ":")
	term = strings.TrimSpace(term)
	if !found {
		return term, 1
	}
	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	if err != nil || page < 1 {
		return term, 1
	}
	return term, page
}

// defaultOutputPath derives the export filename from the manuscript name.
func defaultOutputPath(filename string) string {
	if filename == "" {
		return "manuscript_folio.txt"
	}
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_folio.txt"
}

func main() {
	format := flag.String("f", "arabic", "Page number format: arabic, roman, roman-upper, alpha, alpha-upper")
	outPath := flag.String("o", "", "Export path (default: <file>_folio.txt)")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Folio - Manuscript TOC & Index Generator\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  folio [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, f := range loader.SupportedFormats() {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		fmt.Fprintf(os.Stderr, "  plain text (anything else)\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  TAB      Switch between TOC and index\n")
		fmt.Fprintf(os.Stderr, "  r        Regenerate from the document\n")
		fmt.Fprintf(os.Stderr, "  p        Cycle page number format\n")
		fmt.Fprintf(os.Stderr, "  a        Add an index term\n")
		fmt.Fprintf(os.Stderr, "  d        Delete the selected index term\n")
		fmt.Fprintf(os.Stderr, "  i        Insert TOC and index, export\n")
		fmt.Fprintf(os.Stderr, "  Q        Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("folio %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	pageFormat, err := outline.ParsePageNumberFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var doc *document.Document
	filename := ""

	if flag.NArg() > 0 {
		filename = flag.Arg(0)
		doc, err = loader.LoadDocument(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load '%s': %v\n", filename, err)
			os.Exit(1)
		}
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Error: No input provided. Provide a file or pipe text to stdin.")
			fmt.Fprintln(os.Stderr, "Try: folio -h")
			os.Exit(1)
		}

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		doc = document.FromString(string(data))
	}

	if strings.TrimSpace(doc.String()) == "" {
		fmt.Fprintln(os.Stderr, "Error: No text to process.")
		os.Exit(1)
	}

	mgr := outline.NewManager()
	mgr.PageFormat = pageFormat

	out := *outPath
	if out == "" {
		out = defaultOutputPath(filename)
	}

	m := newModel(doc, mgr, filename, out)

	if filename != "" {
		if store, err := state.NewStore(); err == nil {
			if hash, err := state.ComputeHash(filename); err == nil {
				m.store = store
				m.fileHash = hash
				if sess, ok := store.Session(hash); ok {
					if f, err := outline.ParsePageNumberFormat(sess.PageFormat); err == nil {
						m.mgr.PageFormat = f
					}
					for _, t := range sess.Terms {
						m.mgr.AddIndexEntry(t.Term, document.Range{}, t.Page, t.Category)
					}
					m.refreshItems()
				}
			}
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

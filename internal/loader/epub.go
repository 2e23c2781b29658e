package loader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/quillpilot/folio/internal/document"
)

// EPUBFormat loads EPUB manuscripts. Spine items become body runs; titles
// from the NCX navigation map become style-tagged heading runs at each
// chapter start.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Load(filename string) (*document.Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	titles := buildNavTitleMap(filename, book)
	doc := document.New()

	for i, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}

		body := strings.TrimSpace(extractTextFromHTML(string(data)))
		if body == "" {
			continue
		}

		nav, ok := lookupNav(titles, ref.Item.HREF)
		if !ok {
			nav = navTitle{title: fmt.Sprintf("Section %d", i+1)}
		}
		style, size := "Chapter Title", 22.0
		if nav.depth > 0 {
			style, size = "Heading 1", 20.0
		}
		doc.AppendRun(document.Run{Text: nav.title + "\n\n", Style: style, FontSize: size, Bold: true})
		doc.AppendRun(document.Run{Text: body + "\n\n", FontSize: bodyFontSize})
	}

	return doc, nil
}

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     navLabel   `xml:"navLabel"`
	Content   navContent `xml:"content"`
	Children  []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

type navTitle struct {
	title string
	depth int
}

// buildNavTitleMap parses the NCX and maps spine hrefs to their navigation
// titles and nesting depth.
func buildNavTitleMap(filename string, book *epub.Rootfile) map[string]navTitle {
	result := make(map[string]navTitle)

	ncxData, err := findAndReadNCX(filename, book)
	if err != nil {
		return result
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return result
	}

	var walk func(points []navPoint, depth int)
	walk = func(points []navPoint, depth int) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			if title != "" {
				for _, key := range hrefKeys(np.Content.Src) {
					if _, exists := result[key]; !exists {
						result[key] = navTitle{title: title, depth: depth}
					}
				}
			}
			walk(np.Children, depth+1)
		}
	}
	walk(toc.NavMap.NavPoints, 0)

	return result
}

// hrefKeys returns the lookup keys for an NCX content src: the full href,
// the href without its fragment, and the bare filename.
func hrefKeys(href string) []string {
	keys := []string{href}
	base := href
	if idx := strings.Index(base, "#"); idx != -1 {
		base = base[:idx]
		keys = append(keys, base)
	}
	name := path.Base(base)
	if name != base {
		keys = append(keys, name)
	}
	return keys
}

func lookupNav(titles map[string]navTitle, href string) (navTitle, bool) {
	if href == "" {
		return navTitle{}, false
	}
	if t, ok := titles[href]; ok {
		return t, true
	}
	if t, ok := titles[path.Base(href)]; ok {
		return t, true
	}
	return navTitle{}, false
}

func findAndReadNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}

	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) || path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}

func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}

	var out strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				out.WriteString(t)
				out.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out.String()
}

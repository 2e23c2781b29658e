package loader

import (
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/quillpilot/folio/internal/document"
)

// MarkdownFormat loads Markdown manuscripts, turning headings into
// style-tagged runs so heading detection works on semantic styles rather
// than raw font sizes.
type MarkdownFormat struct {
	md goldmark.Markdown
}

func init() {
	Register(&MarkdownFormat{md: goldmark.New()})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Load(filename string) (*document.Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return f.Parse(content), nil
}

// Parse builds an attributed document from Markdown source. H1 maps to the
// chapter style, H2 and H3 to the two heading styles; deeper headings and
// everything else become body runs.
func (f *MarkdownFormat) Parse(content []byte) *document.Document {
	doc := document.New()
	root := f.md.Parser().Parse(text.NewReader(content))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := nodeText(node, content)
			if title == "" {
				return ast.WalkSkipChildren, nil
			}
			style, size := headingAttrs(node.Level)
			doc.AppendRun(document.Run{
				Text:     title + "\n\n",
				Style:    style,
				FontSize: size,
				Bold:     style != "",
			})
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			body := nodeText(node, content)
			if body != "" {
				doc.AppendRun(document.Run{Text: body + "\n\n", FontSize: bodyFontSize})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return doc
}

const bodyFontSize = 12

func headingAttrs(level int) (string, float64) {
	switch level {
	case 1:
		return "Chapter Title", 22
	case 2:
		return "Heading 1", 20
	case 3:
		return "Heading 2", 18
	}
	return "", bodyFontSize
}

// nodeText collects the plain text under a node, joining soft-wrapped lines
// with spaces.
func nodeText(n ast.Node, content []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(content))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

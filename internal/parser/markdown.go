package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// MarkdownParser reads Markdown pages using goldmark. Inline emphasis, code
// spans and links are rewritten to the pseudo-HTML tags of raw text.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]*rawdoc.Entry, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	page := newPage(filename)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			page.heading(node.Level, inlineMarkup(node, src))
		case *ast.Paragraph:
			page.paragraph(inlineMarkup(node, src))
		case *ast.FencedCodeBlock:
			page.code(string(node.Language(src)), blockLines(node, src))
		case *ast.CodeBlock:
			page.code("", blockLines(node, src))
		case *ast.List:
			page.paragraph(listMarkup(node, src))
		case *ast.ThematicBreak, *ast.HTMLBlock:
		default:
			page.paragraph(inlineMarkup(node, src))
		}
	}
	return page.entries(), nil
}

func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

func listMarkup(list *ast.List, src []byte) string {
	tag := "ul"
	if list.IsOrdered() {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		sb.WriteString("<li>")
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				sb.WriteString(listMarkup(sub, src))
				continue
			}
			sb.WriteString(inlineMarkup(c, src))
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

// inlineMarkup renders the inline children of n as raw-text markup.
func inlineMarkup(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.Emphasis:
			tag := "i"
			if node.Level >= 2 {
				tag = "b"
			}
			buf.WriteString("<" + tag + ">" + inlineMarkup(node, src) + "</" + tag + ">")
		case *ast.CodeSpan:
			buf.WriteString("<tt>" + inlineMarkup(node, src) + "</tt>")
		case *ast.Link:
			buf.WriteString(`<a href="` + string(node.Destination) + `">` + inlineMarkup(node, src) + "</a>")
		case *ast.AutoLink:
			buf.WriteString(`<a href="` + string(node.URL(src)) + `">` + string(node.Label(src)) + "</a>")
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(src))
			}
		default:
			buf.WriteString(inlineMarkup(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

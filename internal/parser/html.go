package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// HTMLParser reads HTML pages. Headings become sections, block elements
// paragraphs and <pre> elements code blocks.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]*rawdoc.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := newPage(filename)
	if title := findTitle(doc); title != "" {
		page.heading(1, title)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				page.heading(level, innerMarkup(n))
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "title":
				return
			case "pre":
				page.code(codeLanguage(n), textContent(n))
				return
			case "ul", "ol":
				page.paragraph("<" + n.Data + ">" + innerMarkup(n) + "</" + n.Data + ">")
				return
			case "p", "td", "blockquote", "dd", "dt":
				page.paragraph(innerMarkup(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return page.entries(), nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// inlineTags maps HTML inline elements to raw-text tags.
var inlineTags = map[string]string{
	"b":      "b",
	"strong": "b",
	"i":      "i",
	"em":     "i",
	"code":   "tt",
	"tt":     "tt",
	"li":     "li",
	"sup":    "sup",
	"sub":    "sub",
}

// innerMarkup renders the children of n, keeping inline formatting and
// links and flattening everything else to text.
func innerMarkup(n *html.Node) string {
	var buf strings.Builder
	var render func(*html.Node)
	render = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "br" {
				buf.WriteString("<br/>")
				return
			}
			if n.Data == "a" {
				buf.WriteString(`<a href="` + attr(n, "href") + `">`)
				defer buf.WriteString("</a>")
			} else if tag, ok := inlineTags[n.Data]; ok {
				buf.WriteString("<" + tag + ">")
				defer buf.WriteString("</" + tag + ">")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			render(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(c)
	}
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// codeLanguage reads a "language-xxx" class from a pre element or its code child.
func codeLanguage(n *html.Node) string {
	for _, node := range []*html.Node{n, n.FirstChild} {
		if node == nil || node.Type != html.ElementNode {
			continue
		}
		for _, class := range strings.Fields(attr(node, "class")) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok {
				return lang
			}
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return strings.TrimSpace(textContent(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

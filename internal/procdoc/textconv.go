package procdoc

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/rawdoc"
)

// TextConverter builds doctree nodes from raw token streams.
type TextConverter struct {
	log *slog.Logger
}

// NewTextConverter creates a TextConverter that reports tag problems to log.
func NewTextConverter(log *slog.Logger) *TextConverter {
	return &TextConverter{log: log}
}

type tagToken struct {
	name    string
	attrs   []html.Attribute
	closing bool
	selfEnd bool
}

// decodeTag reads a single tag token with the html tokenizer.
func decodeTag(raw string) (tagToken, bool) {
	z := html.NewTokenizer(strings.NewReader(raw))
	tt := z.Next()
	tok := z.Token()
	switch tt {
	case html.StartTagToken:
		return tagToken{name: tok.Data, attrs: tok.Attr}, true
	case html.SelfClosingTagToken:
		return tagToken{name: tok.Data, attrs: tok.Attr, selfEnd: true}, true
	case html.EndTagToken:
		return tagToken{name: tok.Data, closing: true}, true
	}
	return tagToken{}, false
}

// Convert turns text into a tree rooted at a div node. Leading and trailing
// whitespace tokens are dropped, line breaks become "\n" and other whitespace
// a single space. In verbatim mode tags are kept as text. Unbalanced tags are
// logged and tolerated.
func (c *TextConverter) Convert(text rawdoc.Text, verbatim bool) *doctree.Node {
	root := doctree.NewElement("div")
	var (
		tags        []string
		nodes       = []*doctree.Node{root}
		atLineStart = true
	)
	current := func() *doctree.Node { return nodes[len(nodes)-1] }

	last := len(text.Tokens) - 1
	for i, tok := range text.Tokens {
		if tok.Type.IsWhitespace() {
			if i == 0 || i == last {
				continue
			}
			switch {
			case tok.Type == rawdoc.TokenSpace && atLineStart:
			case tok.Type == rawdoc.TokenBreak:
				atLineStart = true
				current().AppendText(doctree.NewText("\n"))
			default:
				atLineStart = tok.Type == rawdoc.TokenEmptyLine
				current().AppendText(doctree.NewText(" "))
			}
			continue
		}
		atLineStart = false

		if verbatim || tok.Type != rawdoc.TokenHTMLTag {
			current().AppendText(doctree.NewText(tok.Val))
			continue
		}
		tag, ok := decodeTag(tok.Val)
		if !ok {
			current().AppendText(doctree.NewText(tok.Val))
			continue
		}

		switch {
		case tag.closing:
			if len(tags) == 0 {
				c.log.Warn("closing tag without open tag", "tag", tag.name)
				continue
			}
			if open := tags[len(tags)-1]; open != tag.name {
				c.log.Warn("mismatched closing tag", "open", open, "close", tag.name)
			}
			tags = tags[:len(tags)-1]
			nodes = nodes[:len(nodes)-1]
		default:
			n := doctree.NewElement(tag.name)
			if tag.name == "a" {
				for _, a := range tag.attrs {
					n.SetAttr(a.Key, a.Val)
				}
			}
			current().AddChild(n)
			if !tag.selfEnd {
				tags = append(tags, tag.name)
				nodes = append(nodes, n)
			}
		}
	}
	if len(tags) > 0 {
		c.log.Warn("unclosed tags at end of text", "tags", strings.Join(tags, ","))
	}
	return root
}

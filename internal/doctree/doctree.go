// Package doctree holds the semantic markup tree produced from raw
// documentation text. Nodes are DOM-like: a type, attributes and children,
// with plain text stored in leaf nodes.
package doctree

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// TextType is the node type reserved for plain text leaves.
const TextType = "<text>"

// Node is one node of a processed text tree.
type Node struct {
	Type     string            `json:"type"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty"`
	Text     string            `json:"text,omitempty"`
}

// NewElement returns an empty element node of the given tag type.
func NewElement(typ string) *Node {
	return &Node{Type: typ}
}

// NewText returns a text leaf with s escaped for embedding in markup.
func NewText(s string) *Node {
	return &Node{Type: TextType, Text: html.EscapeString(s)}
}

// NewVerbatim returns a text leaf holding s unchanged.
func NewVerbatim(s string) *Node {
	return &Node{Type: TextType, Text: s}
}

// IsText reports whether n is a plain text leaf.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TextType
}

// SetAttr sets an attribute, escaping key and value.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[html.EscapeString(key)] = html.EscapeString(value)
}

// Attr returns the attribute value for key.
func (n *Node) Attr(key string) string {
	return n.Attrs[key]
}

// AddChild appends c and returns it.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// AppendText adds a text leaf, merging it into the last child when that
// child is a text leaf as well.
func (n *Node) AppendText(leaf *Node) {
	if k := len(n.Children); k > 0 && n.Children[k-1].IsText() && len(n.Children[k-1].Attrs) == 0 {
		n.Children[k-1].Text += leaf.Text
		return
	}
	n.AddChild(leaf)
}

// First returns n for text leaves and the first child otherwise.
func (n *Node) First() *Node {
	if n.IsText() || len(n.Children) == 0 {
		return n
	}
	return n.Children[0]
}

// PlainText concatenates the text of all leaves below n.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.PlainText())
	}
	return sb.String()
}

// HTMLLike renders n as HTML-like markup, mostly for debugging and tests.
// With skipTop the enclosing tag of n itself is omitted.
func (n *Node) HTMLLike(skipTop bool) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeHTMLLike(&sb, skipTop)
	return sb.String()
}

func (n *Node) writeHTMLLike(sb *strings.Builder, skipTop bool) {
	if n.IsText() {
		sb.WriteString(n.Text)
		return
	}
	if !skipTop {
		sb.WriteString("<")
		sb.WriteString(n.Type)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(strconv.Quote(n.Attrs[k]))
		}
		sb.WriteString(">")
	}
	for _, c := range n.Children {
		c.writeHTMLLike(sb, false)
	}
	if !skipTop {
		sb.WriteString("</")
		sb.WriteString(n.Type)
		sb.WriteString(">")
	}
}

// Walk calls fn for n and every descendant in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

package parser

import (
	"testing"

	"github.com/dgallion1/dox/internal/rawdoc"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Sequence Tutorial

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	e := parseOne(t, &MarkdownParser{}, input, "tutorial.md")

	if e.Name != "tutorial" {
		t.Errorf("expected name %q, got %q", "tutorial", e.Name)
	}
	if got := e.Title.String(); got != "Sequence Tutorial" {
		t.Errorf("expected title %q, got %q", "Sequence Tutorial", got)
	}

	type item struct {
		typ   rawdoc.ItemType
		level int
		text  string
	}
	want := []item{
		{rawdoc.ItemParagraph, 0, "Intro text."},
		{rawdoc.ItemSection, 2, "Section A"},
		{rawdoc.ItemParagraph, 0, "Section A content."},
		{rawdoc.ItemSection, 3, "Subsection A1"},
		{rawdoc.ItemParagraph, 0, "Subsection A1 content."},
		{rawdoc.ItemSection, 2, "Section B"},
		{rawdoc.ItemParagraph, 0, "Section B content."},
	}
	if len(e.Body) != len(want) {
		t.Fatalf("expected %d body items, got %d", len(want), len(e.Body))
	}
	for i, w := range want {
		got := e.Body[i]
		if got.Type != w.typ || got.Level != w.level || got.Text.String() != w.text {
			t.Errorf("item[%d]: expected %+v, got %s/%d/%q", i, w, got.Type, got.Level, got.Text.String())
		}
	}
}

func TestMarkdownParser_InlineMarkup(t *testing.T) {
	input := "Use **bold**, *italic*, `code` and [String](seqan:String).\n"
	e := parseOne(t, &MarkdownParser{}, input, "inline.md")

	want := `Use <b>bold</b>, <i>italic</i>, <tt>code</tt> and <a href="seqan:String">String</a>.`
	if len(e.Body) != 1 || e.Body[0].Text.String() != want {
		t.Errorf("expected %q, got %+v", want, e.Body)
	}
}

func TestMarkdownParser_CodeBlocks(t *testing.T) {
	input := "Intro.\n\n```cpp\nint main() {}\n```\n\n    plain block\n"
	e := parseOne(t, &MarkdownParser{}, input, "code.md")

	if len(e.Body) != 3 {
		t.Fatalf("expected 3 items, got %d", len(e.Body))
	}
	if got := e.Body[1].Text.String(); got != "{.cpp}\nint main() {}" {
		t.Errorf("unexpected fenced block %q", got)
	}
	if got := e.Body[2].Text.String(); got != "plain block" {
		t.Errorf("unexpected indented block %q", got)
	}
}

func TestMarkdownParser_List(t *testing.T) {
	e := parseOne(t, &MarkdownParser{}, "- one\n- two\n", "list.md")
	if len(e.Body) != 1 || e.Body[0].Text.String() != "<ul><li>one</li><li>two</li></ul>" {
		t.Errorf("unexpected list rendering %+v", e.Body)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	e := parseOne(t, &MarkdownParser{}, "", "empty.md")
	if len(e.Body) != 0 {
		t.Errorf("expected empty body, got %d items", len(e.Body))
	}
	if e.Title.String() != "empty" {
		t.Errorf("expected title to fall back to %q, got %q", "empty", e.Title.String())
	}
}

func TestMarkdownParser_NameStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"docs/plain.md", "plain"},
	}
	for _, tt := range tests {
		e := parseOne(t, &MarkdownParser{}, "text", tt.filename)
		if e.Name != tt.want {
			t.Errorf("filename=%q: expected name %q, got %q", tt.filename, tt.want, e.Name)
		}
	}
}

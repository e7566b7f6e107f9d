package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/dox/internal/rawdoc"
)

func TestDOCXParser_Page(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().Style("Heading1").AddText("Alignment Guide")
	w.AddParagraph().Style("Heading2").AddText("Scoring")
	para := w.AddParagraph()
	para.AddText("Use ")
	para.AddText("affine").Bold()
	para.AddText(" gaps.")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	e := parseOne(t, &DOCXParser{}, buf.String(), "align.docx")
	if e.Name != "align" {
		t.Errorf("expected name %q, got %q", "align", e.Name)
	}
	if got := e.Title.String(); got != "Alignment Guide" {
		t.Errorf("expected title %q, got %q", "Alignment Guide", got)
	}
	if len(e.Body) != 2 {
		t.Fatalf("expected 2 body items, got %d", len(e.Body))
	}
	if e.Body[0].Type != rawdoc.ItemSection || e.Body[0].Level != 2 {
		t.Errorf("expected level 2 section, got %+v", e.Body[0])
	}
	if got := e.Body[1].Text.String(); got != "Use <b>affine</b> gaps." {
		t.Errorf("unexpected paragraph %q", got)
	}
}

func TestDOCXHeadingLevel(t *testing.T) {
	tests := map[string]int{"Heading1": 1, "heading 3": 3, "Title": 1, "Normal": 0, "Heading9": 0}
	for style, want := range tests {
		para := &docx.Paragraph{}
		para.Style(style)
		if got := docxHeadingLevel(para); got != want {
			t.Errorf("style %q: expected %d, got %d", style, want, got)
		}
	}
}

func TestDOCXParser_Invalid(t *testing.T) {
	if _, err := (&DOCXParser{}).Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}

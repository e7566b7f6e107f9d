package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgallion1/dox/internal/rawdoc"
)

const stringEntries = `
- command: class
  name: String
  brief: The string class.
  signature: |
    template <typename TValue, typename TSpec>
    class String;
  implements: [ContainerConcept, RandomAccessContainerConcept]
  extends: Base
  tparam:
    - name: TValue
      text: The value type.
  body:
    - section: Examples
      level: 2
    - paragraph: Stores a <b>sequence</b>.
    - code: |
        {.cpp}
        String<char> s = "ACGT";
    - snippet: demos/string.cpp
      name: main
  see: [length]
- command: fn
  name: String::resize
  param:
    - name: str
      inout: "[in,out]"
      text: The string.
  return:
    - type: void
      text: Nothing.
---
- command: var
  name: MAX_LENGTH
  type: unsigned
`

func TestYAMLParser_Entries(t *testing.T) {
	entries, err := (&YAMLParser{}).Parse(strings.NewReader(stringEntries), "string.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []rawdoc.Kind
	for _, e := range entries {
		kinds = append(kinds, e.Kind())
	}
	want := []rawdoc.Kind{rawdoc.KindClass, rawdoc.KindMemberFunction, rawdoc.KindVariable}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}

	cl := entries[0]
	if cl.Source != "string.yaml" {
		t.Errorf("expected source string.yaml, got %q", cl.Source)
	}
	if len(cl.Briefs) != 1 || cl.Briefs[0].String() != "The string class." {
		t.Errorf("unexpected brief %v", cl.Briefs)
	}
	if len(cl.Signatures) != 1 || !strings.HasSuffix(cl.Signatures[0].String(), "class String;") {
		t.Errorf("unexpected signatures %v", cl.Signatures)
	}
	if len(cl.Implements) != 2 || len(cl.Extends) != 1 || cl.Extends[0].String() != "Base" {
		t.Errorf("unexpected inheritance %v %v", cl.Extends, cl.Implements)
	}
	var items []rawdoc.ItemType
	for _, it := range cl.Body {
		items = append(items, it.Type)
	}
	wantItems := []rawdoc.ItemType{rawdoc.ItemSection, rawdoc.ItemParagraph, rawdoc.ItemCode, rawdoc.ItemSnippet}
	if diff := cmp.Diff(wantItems, items); diff != "" {
		t.Errorf("body items (-want +got):\n%s", diff)
	}
	if got := cl.Body[2].Text.String(); got != "{.cpp}\nString<char> s = \"ACGT\";" {
		t.Errorf("unexpected code %q", got)
	}

	fn := entries[1]
	if len(fn.Params) != 1 || fn.Params[0].InOut != "[in,out]" {
		t.Errorf("unexpected params %+v", fn.Params)
	}
	if len(fn.Returns) != 1 || fn.Returns[0].Type != "void" {
		t.Errorf("unexpected returns %+v", fn.Returns)
	}
	if entries[2].Type != "unsigned" {
		t.Errorf("expected variable type unsigned, got %q", entries[2].Type)
	}
}

func TestYAMLParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing name", "- command: class\n"},
		{"empty body item", "- command: page\n  name: P\n  body:\n    - level: 2\n"},
		{"snippet without name", "- command: page\n  name: P\n  body:\n    - snippet: a.cpp\n"},
		{"not a sequence", "command: class\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (&YAMLParser{}).Parse(strings.NewReader(tt.input), "bad.yaml"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.yaml", "*parser.YAMLParser"},
		{"a.YML", "*parser.YAMLParser"},
		{"a.md", "*parser.MarkdownParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.txt", "*parser.TextParser"},
		{"a.docx", "*parser.DOCXParser"},
		{"a.pdf", "*parser.PDFParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := fmt.Sprintf("%T", p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
	if _, err := ForFile("a.rtf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("x.csv") || !IsSupportedExtension("x.Markdown") {
		t.Error("unexpected IsSupportedExtension result")
	}
}

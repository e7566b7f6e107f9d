package procdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/rawdoc"
	"github.com/dgallion1/dox/internal/sigparser"
)

func TestProcessor_UniqueNames(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdClass, "String"),
		raw(rawdoc.CmdConcept, "ContainerConcept"),
		raw(rawdoc.CmdFunction, "length"),
		raw(rawdoc.CmdFunction, "String::resize"),
		raw(rawdoc.CmdPage, "Intro"),
		raw(rawdoc.CmdVariable, "npos", ofType("unsigned")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ContainerConcept", "Intro", "String", "String::resize", "length", "npos"}
	if diff := cmp.Diff(want, doc.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if len(doc.TopLevel) != 5 || len(doc.SecondLevel) != 1 {
		t.Errorf("expected 5 top-level and 1 second-level, got %d and %d", len(doc.TopLevel), len(doc.SecondLevel))
	}
}

func TestProcessor_DuplicateName(t *testing.T) {
	_, err := run(raw(rawdoc.CmdClass, "String"), raw(rawdoc.CmdConcept, "String"))

	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BuildError, got %v", err)
	}
	if !errors.Is(err, ErrDuplicateEntry) || be.Entry != "String" {
		t.Errorf("expected duplicate error for String, got %v", err)
	}
}

func TestDoc_DuplicateKeepsFirst(t *testing.T) {
	doc := NewDoc()
	first := newEntry(rawdoc.KindClass, "String")
	if err := doc.AddTopLevel(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := doc.AddTopLevel(newEntry(rawdoc.KindConcept, "String"))
	if !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
	if got, _ := doc.Lookup("String"); got != first || len(doc.Entries) != 1 {
		t.Error("expected registry to keep only the first entry")
	}
}

func TestProcessor_SecondLevelOwners(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdFunction, "String::resize"),
		raw(rawdoc.CmdFunction, "ContainerConcept#length"),
		raw(rawdoc.CmdFunction, "length"),
		raw(rawdoc.CmdClass, "String"),
		raw(rawdoc.CmdConcept, "ContainerConcept"),
		raw(rawdoc.CmdDefgroup, "Tags"),
		raw(rawdoc.CmdTag, "Tags#Default"),
		raw(rawdoc.CmdTypedef, "Tags#TDefault"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		name  string
		kind  rawdoc.Kind
		owner string
	}{
		{"String::resize", rawdoc.KindMemberFunction, "String"},
		{"ContainerConcept#length", rawdoc.KindInterfaceFunction, "ContainerConcept"},
		{"length", rawdoc.KindGlobalFunction, ""},
		{"Tags#Default", rawdoc.KindGroupedTag, "Tags"},
		{"Tags#TDefault", rawdoc.KindGroupedTypedef, "Tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := doc.Lookup(tt.name)
			if !ok {
				t.Fatalf("entry %s not registered", tt.name)
			}
			if e.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, e.Kind)
			}
			if tt.owner == "" {
				if _, ok := doc.TopLevel[tt.name]; !ok {
					t.Errorf("expected %s to be top-level", tt.name)
				}
				return
			}
			found := false
			for _, sub := range doc.TopLevel[tt.owner].Subentries(tt.kind) {
				found = found || sub == e
			}
			if !found {
				t.Errorf("expected %s under %s", tt.name, tt.owner)
			}
		})
	}
	tags := doc.TopLevel["Tags"]
	if len(tags.Tags()) != 1 || len(tags.Typedefs()) != 1 {
		t.Errorf("expected group views with one tag and one typedef")
	}
}

func TestProcessor_UnknownOwner(t *testing.T) {
	_, err := run(raw(rawdoc.CmdFunction, "Missing::resize"))

	var be *BuildError
	if !errors.As(err, &be) || !errors.Is(err, ErrUnknownOwner) {
		t.Fatalf("expected unknown owner error, got %v", err)
	}
	if be.Ref != "Missing" {
		t.Errorf("expected ref Missing, got %q", be.Ref)
	}
}

func TestProcessor_Variables(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdEnum, "Color"),
		raw(rawdoc.CmdClass, "String"),
		raw(rawdoc.CmdDefgroup, "Limits"),
		raw(rawdoc.CmdVariable, "Color::RED", ofType("Color")),
		raw(rawdoc.CmdVariable, "String::npos", ofType("unsigned")),
		raw(rawdoc.CmdVariable, "Limits#MAX", ofType("int")),
		raw(rawdoc.CmdVariable, "VERSION", ofType("char const *")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.TopLevel["Color"].Subentries(rawdoc.KindMemberVariable); len(got) != 1 || got[0].Name != "Color::RED" {
		t.Errorf("expected Color::RED as value of Color, got %v", got)
	}
	if got := doc.TopLevel["String"].Subentries(rawdoc.KindMemberVariable); len(got) != 1 || got[0].Type != "unsigned" {
		t.Errorf("expected String::npos under String, got %v", got)
	}
	if got := doc.TopLevel["Limits"].Subentries(rawdoc.KindGroupedVariable); len(got) != 1 {
		t.Errorf("expected Limits#MAX under Limits, got %v", got)
	}
	if _, ok := doc.TopLevel["VERSION"]; !ok {
		t.Error("expected VERSION to be top-level")
	}
}

func TestProcessor_VariableTypeOwnerWithoutMemberName(t *testing.T) {
	doc, err := run(raw(rawdoc.CmdEnum, "Color"), raw(rawdoc.CmdVariable, "RED", ofType("Color")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.TopLevel["Color"].Subentries(rawdoc.KindVariable); len(got) != 1 || got[0].Name != "RED" {
		t.Errorf("expected RED as value of Color, got %v", got)
	}
	if _, ok := doc.TopLevel["RED"]; ok {
		t.Error("expected RED not to be top-level")
	}
}

func TestProcessor_UnknownKindSkipped(t *testing.T) {
	log, buf := testLogger()
	doc, err := NewProcessor(log, fakeIncludes{}, sigparser.Parser{}, Options{}).Run(&rawdoc.Doc{Entries: []*rawdoc.Entry{
		raw("warning", "Oops"),
		raw(rawdoc.CmdClass, "String"),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc.Lookup("Oops"); ok {
		t.Error("expected unknown entry to be skipped")
	}
	if !strings.Contains(buf.String(), "no converter") || !strings.Contains(buf.String(), "Oops") {
		t.Errorf("expected skip warning, got %q", buf.String())
	}
}

func TestProcessor_LinkCheck(t *testing.T) {
	entries := []*rawdoc.Entry{
		raw(rawdoc.CmdClass, "String", sees("length", "Missing"), func(e *rawdoc.Entry) {
			e.Briefs = txts(`Like <a href="seqan:Other">Other</a> and <a href="http://example.com">web</a>.`)
		}),
		raw(rawdoc.CmdFunction, "length", sees("String")),
	}

	log, buf := testLogger()
	doc, err := NewProcessor(log, fakeIncludes{}, sigparser.Parser{}, Options{}).Run(&rawdoc.Doc{Entries: entries})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []UnresolvedLink{{From: "String", Target: "Missing"}, {From: "String", Target: "Other"}}
	if diff := cmp.Diff(want, doc.Unresolved); diff != "" {
		t.Errorf("unresolved (-want +got):\n%s", diff)
	}
	if strings.Count(buf.String(), "unresolved link") != 2 {
		t.Errorf("expected two unresolved link warnings, got %q", buf.String())
	}

	_, err = NewProcessor(log, fakeIncludes{}, sigparser.Parser{}, Options{StrictLinks: true}).Run(&rawdoc.Doc{Entries: entries})
	if !errors.Is(err, ErrUnresolvedLinks) {
		t.Errorf("expected ErrUnresolvedLinks in strict mode, got %v", err)
	}
}

func TestDoc_VisitText(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdClass, "String", func(e *rawdoc.Entry) { e.Briefs = txts("A <b>string</b>.") }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var texts []string
	doc.VisitText(func(e *Entry, n *doctree.Node) {
		texts = append(texts, e.Name+":"+n.Text)
	})
	if diff := cmp.Diff([]string{"String:A ", "String:string", "String:."}, texts); diff != "" {
		t.Errorf("visited text (-want +got):\n%s", diff)
	}
}

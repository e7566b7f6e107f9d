package procdoc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgallion1/dox/internal/rawdoc"
)

func setOf(t *testing.T, doc *Doc, name string, pick func(*Inheritance) []string) []string {
	t.Helper()
	e, ok := doc.TopLevel[name]
	if !ok || e.Inheritance == nil {
		t.Fatalf("no inheritance for %s", name)
	}
	return pick(e.Inheritance)
}

func allExtended(i *Inheritance) []string     { return i.AllExtended.Elements() }
func allExtending(i *Inheritance) []string    { return i.AllExtending.Elements() }
func allImplemented(i *Inheritance) []string  { return i.AllImplemented.Elements() }
func allImplementing(i *Inheritance) []string { return i.AllImplementing.Elements() }

func TestInheritance_Chain(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdConcept, "A", extends("B")),
		raw(rawdoc.CmdConcept, "B", extends("C")),
		raw(rawdoc.CmdConcept, "C"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "C"}, setOf(t, doc, "A", allExtended)); diff != "" {
		t.Errorf("all_extended(A) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B"}, setOf(t, doc, "C", allExtending)); diff != "" {
		t.Errorf("all_extending(C) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A"}, setOf(t, doc, "B", allExtending)); diff != "" {
		t.Errorf("all_extending(B) (-want +got):\n%s", diff)
	}
}

func TestInheritance_Cycle(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdClass, "A", extends("B")),
		raw(rawdoc.CmdClass, "B", extends("A")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"A", "B"} {
		if diff := cmp.Diff([]string{"A", "B"}, setOf(t, doc, name, allExtended)); diff != "" {
			t.Errorf("all_extended(%s) (-want +got):\n%s", name, diff)
		}
	}
}

func TestInheritance_ImplementsPropagatesToSubclasses(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdConcept, "X"),
		raw(rawdoc.CmdClass, "Base", implements("X")),
		raw(rawdoc.CmdClass, "S", extends("Base")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.TopLevel["S"].Inheritance.Implements; len(got) != 0 {
		t.Errorf("expected S to implement nothing directly, got %v", got)
	}
	if diff := cmp.Diff([]string{"Base", "S"}, setOf(t, doc, "X", allImplementing)); diff != "" {
		t.Errorf("all_implementing(X) (-want +got):\n%s", diff)
	}
	for _, name := range []string{"Base", "S"} {
		if diff := cmp.Diff([]string{"X"}, setOf(t, doc, name, allImplemented)); diff != "" {
			t.Errorf("all_implemented(%s) (-want +got):\n%s", name, diff)
		}
	}
}

func TestInheritance_Symmetric(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdConcept, "Root"),
		raw(rawdoc.CmdConcept, "Mid", extends("Root")),
		raw(rawdoc.CmdConcept, "Leaf", extends("Mid", "Root")),
		raw(rawdoc.CmdClass, "Base", implements("Mid")),
		raw(rawdoc.CmdClass, "Derived", extends("Base")),
		raw(rawdoc.CmdClass, "MoreDerived", extends("Derived")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range doc.TopLevel {
		if a.Inheritance == nil {
			continue
		}
		for _, b := range a.Inheritance.AllExtended.Elements() {
			if !doc.TopLevel[b].Inheritance.AllExtending.Contains(a.Name) {
				t.Errorf("%s extends %s but is missing from its all_extending", a.Name, b)
			}
		}
		for _, b := range a.Inheritance.AllExtending.Elements() {
			if !doc.TopLevel[b].Inheritance.AllExtended.Contains(a.Name) {
				t.Errorf("%s is extended by %s but not in its all_extended", a.Name, b)
			}
		}
		for _, b := range a.Inheritance.AllImplementing.Elements() {
			if !doc.TopLevel[b].Inheritance.AllImplemented.Contains(a.Name) {
				t.Errorf("%s implemented by %s but not in its all_implemented", a.Name, b)
			}
		}
	}
	if diff := cmp.Diff([]string{"Leaf", "Mid"}, setOf(t, doc, "Root", allExtending)); diff != "" {
		t.Errorf("all_extending(Root) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Base", "Derived", "MoreDerived"}, setOf(t, doc, "Mid", allImplementing)); diff != "" {
		t.Errorf("all_implementing(Mid) (-want +got):\n%s", diff)
	}
}

func TestInheritance_TransitiveMarkerSkipped(t *testing.T) {
	doc, err := run(
		raw(rawdoc.CmdConcept, "X"),
		raw(rawdoc.CmdClass, "Base", implements("X", TransitiveMarker+"Y")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"X"}, setOf(t, doc, "Base", allImplemented)); diff != "" {
		t.Errorf("all_implemented(Base) (-want +got):\n%s", diff)
	}
}

func TestInheritance_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries []*rawdoc.Entry
		want    error
		entry   string
		ref     string
	}{
		{
			name:    "unknown extends",
			entries: []*rawdoc.Entry{raw(rawdoc.CmdClass, "A", extends("Missing"))},
			want:    ErrUnknownSymbol,
			entry:   "A",
			ref:     "Missing",
		},
		{
			name: "unknown transitive extends",
			entries: []*rawdoc.Entry{
				raw(rawdoc.CmdConcept, "A", extends("B")),
				raw(rawdoc.CmdConcept, "B", extends("Gone")),
			},
			want:  ErrUnknownSymbol,
			entry: "B",
			ref:   "Gone",
		},
		{
			name:    "unknown implements",
			entries: []*rawdoc.Entry{raw(rawdoc.CmdClass, "A", implements("NoConcept"))},
			want:    ErrUnknownSymbol,
			entry:   "A",
			ref:     "NoConcept",
		},
		{
			name: "implements a class",
			entries: []*rawdoc.Entry{
				raw(rawdoc.CmdClass, "A", implements("B")),
				raw(rawdoc.CmdClass, "B"),
			},
			want:  ErrKindMismatch,
			entry: "A",
			ref:   "B",
		},
		{
			name: "class extends a concept",
			entries: []*rawdoc.Entry{
				raw(rawdoc.CmdClass, "A", extends("C")),
				raw(rawdoc.CmdConcept, "C"),
			},
			want:  ErrKindMismatch,
			entry: "A",
			ref:   "C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(tt.entries...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("expected *BuildError, got %T", err)
			}
			if be.Entry != tt.entry || be.Ref != tt.ref {
				t.Errorf("expected entry %q ref %q, got %q %q", tt.entry, tt.ref, be.Entry, be.Ref)
			}
		})
	}
}

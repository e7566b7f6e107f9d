package procdoc

import (
	"sort"

	"bitbucket.org/creachadair/stringset"

	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/rawdoc"
	"github.com/dgallion1/dox/internal/sigparser"
)

// InOut is the data direction of a documented parameter.
type InOut string

const (
	DirUnspecified InOut = ""
	DirIn          InOut = "IN"
	DirOut         InOut = "OUT"
	DirInOut       InOut = "IN_OUT"
)

// Param documents a function or macro parameter.
type Param struct {
	Name  string
	InOut InOut
	Desc  *doctree.Node
}

// TParam documents a template parameter.
type TParam struct {
	Type string
	Desc *doctree.Node
}

// Return documents a return value.
type Return struct {
	Type string
	Desc *doctree.Node
}

// CodePart holds what every code entry documents about its declaration.
type CodePart struct {
	Headerfiles      []string
	Deprecations     []*doctree.Node
	Signatures       []*doctree.Node
	SignatureEntries []*sigparser.Entry
}

// Inheritance holds the direct extends/implements names of a class or
// concept and the closures computed over them.
type Inheritance struct {
	Extends    []string
	Implements []string

	AllExtended     stringset.Set
	AllExtending    stringset.Set
	AllImplemented  stringset.Set
	AllImplementing stringset.Set
}

func newInheritance() *Inheritance {
	return &Inheritance{
		AllExtended:     stringset.New(),
		AllExtending:    stringset.New(),
		AllImplemented:  stringset.New(),
		AllImplementing: stringset.New(),
	}
}

// Entry is a processed documentation entry. Kind is fixed at construction;
// the optional parts are set according to it.
type Entry struct {
	Kind   rawdoc.Kind
	Name   string
	Source string

	Brief *doctree.Node
	Body  *doctree.Node
	Sees  []*doctree.Node

	Code        *CodePart
	Inheritance *Inheritance
	Params      []Param
	TParams     []TParam
	Returns     []Return
	Type        string
	Title       *doctree.Node

	subentries map[rawdoc.Kind][]*Entry
}

func newEntry(kind rawdoc.Kind, name string) *Entry {
	return &Entry{
		Kind: kind,
		Name: name,
		Body: doctree.NewElement("div"),
	}
}

// AddSubentry attaches a second-level entry.
func (e *Entry) AddSubentry(sub *Entry) {
	if e.subentries == nil {
		e.subentries = make(map[rawdoc.Kind][]*Entry)
	}
	e.subentries[sub.Kind] = append(e.subentries[sub.Kind], sub)
}

// Subentries returns the attached entries of the given kind in attachment order.
func (e *Entry) Subentries(kind rawdoc.Kind) []*Entry {
	return e.subentries[kind]
}

// SubentryKinds returns the kinds that have attached entries, sorted.
func (e *Entry) SubentryKinds() []rawdoc.Kind {
	kinds := make([]rawdoc.Kind, 0, len(e.subentries))
	for k := range e.subentries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Tags returns the grouped tags attached to a group entry.
func (e *Entry) Tags() []*Entry {
	return e.Subentries(rawdoc.KindGroupedTag)
}

// Typedefs returns the grouped typedefs attached to a group entry.
func (e *Entry) Typedefs() []*Entry {
	return e.Subentries(rawdoc.KindGroupedTypedef)
}

// trees lists every text tree owned by the entry.
func (e *Entry) trees() []*doctree.Node {
	var out []*doctree.Node
	add := func(n *doctree.Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	add(e.Title)
	add(e.Brief)
	add(e.Body)
	for _, n := range e.Sees {
		add(n)
	}
	if e.Code != nil {
		for _, n := range e.Code.Deprecations {
			add(n)
		}
		for _, n := range e.Code.Signatures {
			add(n)
		}
	}
	for _, p := range e.TParams {
		add(p.Desc)
	}
	for _, p := range e.Params {
		add(p.Desc)
	}
	for _, r := range e.Returns {
		add(r.Desc)
	}
	return out
}

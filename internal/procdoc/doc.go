// Package procdoc turns raw documentation entries into the processed,
// cross-referenced document model that renderers consume.
package procdoc

import (
	"sort"

	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/rawdoc"
)

// Doc is the registry of one documentation build. It is written by a single
// Processor run and read-only afterwards.
type Doc struct {
	Entries     map[string]*Entry
	TopLevel    map[string]*Entry
	SecondLevel map[string]*Entry

	// Unresolved holds the link targets that did not resolve.
	Unresolved []UnresolvedLink
}

// NewDoc returns an empty registry.
func NewDoc() *Doc {
	return &Doc{
		Entries:     make(map[string]*Entry),
		TopLevel:    make(map[string]*Entry),
		SecondLevel: make(map[string]*Entry),
	}
}

// Lookup returns the entry registered under name.
func (d *Doc) Lookup(name string) (*Entry, bool) {
	e, ok := d.Entries[name]
	return e, ok
}

// Names returns all registered names, sorted.
func (d *Doc) Names() []string {
	names := make([]string, 0, len(d.Entries))
	for n := range d.Entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (d *Doc) register(e *Entry) error {
	if _, ok := d.Entries[e.Name]; ok {
		return &BuildError{Entry: e.Name, Err: ErrDuplicateEntry}
	}
	d.Entries[e.Name] = e
	return nil
}

// AddTopLevel registers e as a top-level entry.
func (d *Doc) AddTopLevel(e *Entry) error {
	if err := d.register(e); err != nil {
		return err
	}
	d.TopLevel[e.Name] = e
	return nil
}

// AddSecondLevel registers e and attaches it to the owner derived from its
// name. The owner must already be a top-level entry.
func (d *Doc) AddSecondLevel(e *Entry) error {
	owner, _, _ := rawdoc.SplitSecondLevel(e.Name)
	return d.attach(owner, e)
}

func (d *Doc) attach(owner string, e *Entry) error {
	parent, ok := d.TopLevel[owner]
	if !ok {
		return &BuildError{Entry: e.Name, Ref: owner, Err: ErrUnknownOwner}
	}
	if err := d.register(e); err != nil {
		return err
	}
	d.SecondLevel[e.Name] = e
	parent.AddSubentry(e)
	return nil
}

// AddVariable registers a variable entry. A variable whose type names a
// top-level entry becomes a value of that entry; a second-level name attaches
// to its owner; anything else is top-level.
func (d *Doc) AddVariable(e *Entry) error {
	if _, ok := d.TopLevel[e.Type]; ok && e.Type != "" {
		return d.attach(e.Type, e)
	}
	if owner, _, ok := rawdoc.SplitSecondLevel(e.Name); ok {
		return d.attach(owner, e)
	}
	return d.AddTopLevel(e)
}

// Walk calls fn for every node of every entry's text trees. Entries are
// visited in name order. Returning false skips the node's children.
func (d *Doc) Walk(fn func(e *Entry, n *doctree.Node) bool) {
	for _, name := range d.Names() {
		e := d.Entries[name]
		for _, tree := range e.trees() {
			tree.Walk(func(n *doctree.Node) bool { return fn(e, n) })
		}
	}
}

// VisitText calls fn for every plain text leaf in the document.
func (d *Doc) VisitText(fn func(e *Entry, n *doctree.Node)) {
	d.Walk(func(e *Entry, n *doctree.Node) bool {
		if n.IsText() {
			fn(e, n)
		}
		return true
	})
}

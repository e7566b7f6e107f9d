package procdoc

import (
	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/sigparser"
)

// Manifest is the serializable form of a processed Doc.
type Manifest struct {
	Entries    []ManifestEntry   `json:"entries"`
	Unresolved []UnresolvedLink `json:"unresolved,omitempty"`
}

// ManifestEntry is one entry of a Manifest. Text trees are rendered with
// HTMLLike and sets are sorted.
type ManifestEntry struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	TopLevel bool   `json:"topLevel"`
	Source   string `json:"source,omitempty"`

	Title string   `json:"title,omitempty"`
	Brief string   `json:"brief,omitempty"`
	Body  string   `json:"body,omitempty"`
	Sees  []string `json:"sees,omitempty"`

	Subentries map[string][]string `json:"subentries,omitempty"`

	Headerfiles      []string           `json:"headerfiles,omitempty"`
	Deprecated       []string           `json:"deprecated,omitempty"`
	Signatures       []string           `json:"signatures,omitempty"`
	SignatureEntries []*sigparser.Entry `json:"signatureEntries,omitempty"`

	Extends         []string `json:"extends,omitempty"`
	Implements      []string `json:"implements,omitempty"`
	AllExtended     []string `json:"allExtended,omitempty"`
	AllExtending    []string `json:"allExtending,omitempty"`
	AllImplemented  []string `json:"allImplemented,omitempty"`
	AllImplementing []string `json:"allImplementing,omitempty"`

	TParams []ManifestParam `json:"tparams,omitempty"`
	Params  []ManifestParam `json:"params,omitempty"`
	Returns []ManifestParam `json:"returns,omitempty"`
	Type    string          `json:"type,omitempty"`
}

// ManifestParam covers params, template params and return values.
type ManifestParam struct {
	Name  string `json:"name"`
	InOut string `json:"inout,omitempty"`
	Desc  string `json:"desc,omitempty"`
}

// Export builds the manifest, with entries sorted by name.
func (d *Doc) Export() Manifest {
	m := Manifest{Entries: make([]ManifestEntry, 0, len(d.Entries)), Unresolved: d.Unresolved}
	for _, name := range d.Names() {
		m.Entries = append(m.Entries, d.exportEntry(d.Entries[name]))
	}
	return m
}

// ExportEntry returns the manifest form of the named entry.
func (d *Doc) ExportEntry(name string) (ManifestEntry, bool) {
	e, ok := d.Entries[name]
	if !ok {
		return ManifestEntry{}, false
	}
	return d.exportEntry(e), true
}

func render(n *doctree.Node) string {
	if n == nil {
		return ""
	}
	return n.HTMLLike(true)
}

func renderAll(ns []*doctree.Node) []string {
	var out []string
	for _, n := range ns {
		out = append(out, render(n))
	}
	return out
}

func (d *Doc) exportEntry(e *Entry) ManifestEntry {
	_, top := d.TopLevel[e.Name]
	me := ManifestEntry{
		Name:     e.Name,
		Kind:     string(e.Kind),
		TopLevel: top,
		Source:   e.Source,
		Title:    render(e.Title),
		Brief:    render(e.Brief),
		Body:     render(e.Body),
		Type:     e.Type,
	}
	for _, see := range e.Sees {
		me.Sees = append(me.Sees, see.PlainText())
	}
	for _, kind := range e.SubentryKinds() {
		if me.Subentries == nil {
			me.Subentries = make(map[string][]string)
		}
		for _, sub := range e.Subentries(kind) {
			me.Subentries[string(kind)] = append(me.Subentries[string(kind)], sub.Name)
		}
	}
	if e.Code != nil {
		me.Headerfiles = e.Code.Headerfiles
		me.Deprecated = renderAll(e.Code.Deprecations)
		me.Signatures = renderAll(e.Code.Signatures)
		me.SignatureEntries = e.Code.SignatureEntries
	}
	if inh := e.Inheritance; inh != nil {
		me.Extends = inh.Extends
		me.Implements = inh.Implements
		me.AllExtended = inh.AllExtended.Elements()
		me.AllExtending = inh.AllExtending.Elements()
		me.AllImplemented = inh.AllImplemented.Elements()
		me.AllImplementing = inh.AllImplementing.Elements()
	}
	for _, tp := range e.TParams {
		me.TParams = append(me.TParams, ManifestParam{Name: tp.Type, Desc: render(tp.Desc)})
	}
	for _, p := range e.Params {
		me.Params = append(me.Params, ManifestParam{Name: p.Name, InOut: string(p.InOut), Desc: render(p.Desc)})
	}
	for _, r := range e.Returns {
		me.Returns = append(me.Returns, ManifestParam{Name: r.Type, Desc: render(r.Desc)})
	}
	return me
}

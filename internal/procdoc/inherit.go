package procdoc

import (
	"sort"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// TransitiveMarker prefixes implements edges that were added by inheritance
// elsewhere. Such edges are not followed again.
const TransitiveMarker = "\x01"

// BuildInheritance computes the extends/implements closures of all classes
// and concepts. AllExtending is the exact inverse of AllExtended, and a
// concept is implemented by every class that implements it directly plus
// all classes extending one of those.
func (d *Doc) BuildInheritance() error {
	concepts := d.topLevelOfKind(rawdoc.KindConcept)
	classes := d.topLevelOfKind(rawdoc.KindClass)

	for _, group := range []struct {
		kind    rawdoc.Kind
		entries []*Entry
	}{
		{rawdoc.KindConcept, concepts},
		{rawdoc.KindClass, classes},
	} {
		for _, e := range group.entries {
			ext, err := d.extendsClosure(e, group.kind)
			if err != nil {
				return err
			}
			e.Inheritance.AllExtended.Update(ext)
			for _, name := range ext.Elements() {
				d.TopLevel[name].Inheritance.AllExtending.Add(e.Name)
			}
		}
	}

	for _, cl := range classes {
		for _, name := range cl.Inheritance.Implements {
			if strings.Contains(name, TransitiveMarker) {
				continue
			}
			co, err := d.resolve(cl.Name, name, rawdoc.KindConcept)
			if err != nil {
				return err
			}
			co.Inheritance.AllImplementing.Add(cl.Name)
			co.Inheritance.AllImplementing.Update(cl.Inheritance.AllExtending)
		}
	}
	for _, co := range concepts {
		for _, name := range co.Inheritance.AllImplementing.Elements() {
			cl, err := d.resolve(co.Name, name, rawdoc.KindClass)
			if err != nil {
				return err
			}
			cl.Inheritance.AllImplemented.Add(co.Name)
		}
	}
	return nil
}

// extendsClosure follows extends edges from e with a worklist. A name that
// was already reached is not expanded again, so cycles terminate; a cycle
// through e puts e into its own closure.
func (d *Doc) extendsClosure(e *Entry, kind rawdoc.Kind) (stringset.Set, error) {
	seen := stringset.New()
	queue := append([]string(nil), e.Inheritance.Extends...)
	from := make([]string, len(queue))
	for i := range from {
		from[i] = e.Name
	}
	for len(queue) > 0 {
		name, ref := queue[0], from[0]
		queue, from = queue[1:], from[1:]
		if seen.Contains(name) {
			continue
		}
		target, err := d.resolve(ref, name, kind)
		if err != nil {
			return nil, err
		}
		seen.Add(name)
		for _, next := range target.Inheritance.Extends {
			if !seen.Contains(next) {
				queue = append(queue, next)
				from = append(from, name)
			}
		}
	}
	return seen, nil
}

func (d *Doc) resolve(from, name string, kind rawdoc.Kind) (*Entry, error) {
	e, ok := d.TopLevel[name]
	if !ok {
		return nil, &BuildError{Entry: from, Ref: name, Err: ErrUnknownSymbol}
	}
	if e.Kind != kind || e.Inheritance == nil {
		return nil, &BuildError{Entry: from, Ref: name, Err: ErrKindMismatch}
	}
	return e, nil
}

func (d *Doc) topLevelOfKind(kind rawdoc.Kind) []*Entry {
	var out []*Entry
	for _, e := range d.TopLevel {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

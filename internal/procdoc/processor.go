package procdoc

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// Options tunes a Processor run.
type Options struct {
	// StrictLinks turns unresolved link targets into a build error.
	StrictLinks bool
}

// Processor converts a raw document into a processed Doc.
type Processor struct {
	log        *slog.Logger
	opts       Options
	converters map[rawdoc.Kind]Converter
}

// NewProcessor wires the converters for every entry kind.
func NewProcessor(log *slog.Logger, inc IncludeLoader, sigs SignatureParser, opts Options) *Processor {
	return &Processor{
		log:        log,
		opts:       opts,
		converters: newConverters(log, inc, sigs),
	}
}

var (
	topLevelKinds = kindSet(
		rawdoc.KindConcept, rawdoc.KindClass, rawdoc.KindGlobalFunction,
		rawdoc.KindGlobalMetafunction, rawdoc.KindPage, rawdoc.KindTag,
		rawdoc.KindGroup, rawdoc.KindMacro, rawdoc.KindAdaption,
		rawdoc.KindGlobalTypedef, rawdoc.KindEnum,
	)
	secondLevelKinds = kindSet(
		rawdoc.KindMemberFunction, rawdoc.KindInterfaceFunction,
		rawdoc.KindInterfaceMetafunction, rawdoc.KindGroupedTag,
		rawdoc.KindGroupedMacro, rawdoc.KindMemberTypedef,
		rawdoc.KindGroupedTypedef,
	)
	variableKinds = kindSet(
		rawdoc.KindMemberVariable, rawdoc.KindGroupedVariable, rawdoc.KindVariable,
	)
)

func kindSet(kinds ...rawdoc.Kind) map[rawdoc.Kind]bool {
	m := make(map[rawdoc.Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// Run executes the passes in order: top-level entries, second-level
// entries, variables, link checking, inheritance closure. The first fatal
// error aborts the run.
func (p *Processor) Run(raw *rawdoc.Doc) (*Doc, error) {
	doc := NewDoc()

	for _, re := range raw.Entries {
		if kind := re.Kind(); !topLevelKinds[kind] && !secondLevelKinds[kind] && !variableKinds[kind] {
			p.log.Warn("no converter for entry kind, skipping", "entry", re.Name, "kind", kind)
		}
	}

	if err := p.pass(raw, topLevelKinds, doc.AddTopLevel); err != nil {
		return nil, fmt.Errorf("top-level pass: %w", err)
	}
	if err := p.pass(raw, secondLevelKinds, doc.AddSecondLevel); err != nil {
		return nil, fmt.Errorf("second-level pass: %w", err)
	}
	if err := p.pass(raw, variableKinds, doc.AddVariable); err != nil {
		return nil, fmt.Errorf("variable pass: %w", err)
	}

	doc.Unresolved = doc.CheckLinks()
	for _, l := range doc.Unresolved {
		p.log.Warn("unresolved link", "entry", l.From, "target", l.Target)
	}
	if p.opts.StrictLinks && len(doc.Unresolved) > 0 {
		first := doc.Unresolved[0]
		return nil, fmt.Errorf("link check: %d unresolved: %w", len(doc.Unresolved),
			&BuildError{Entry: first.From, Ref: first.Target, Err: ErrUnresolvedLinks})
	}

	if err := doc.BuildInheritance(); err != nil {
		return nil, fmt.Errorf("inheritance pass: %w", err)
	}

	p.log.Debug("documentation processed",
		"entries", len(doc.Entries),
		"top_level", len(doc.TopLevel),
		"second_level", len(doc.SecondLevel),
	)
	return doc, nil
}

func (p *Processor) pass(raw *rawdoc.Doc, kinds map[rawdoc.Kind]bool, add func(*Entry) error) error {
	for _, re := range raw.Entries {
		kind := re.Kind()
		if !kinds[kind] {
			continue
		}
		conv, ok := p.converters[kind]
		if !ok {
			p.log.Warn("no converter for entry kind", "entry", re.Name, "kind", kind)
			continue
		}
		e, err := conv.Process(re)
		if err != nil {
			return err
		}
		if err := add(e); err != nil {
			return err
		}
	}
	return nil
}

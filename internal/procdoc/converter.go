package procdoc

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dgallion1/dox/internal/doctree"
	"github.com/dgallion1/dox/internal/rawdoc"
	"github.com/dgallion1/dox/internal/sigparser"
)

// IncludeLoader loads example files and snippets for @include and @snippet.
type IncludeLoader interface {
	LoadFile(path string) (string, error)
	LoadSnippet(path, name string) (string, error)
}

// SignatureParser parses one signature into structured form.
type SignatureParser interface {
	Parse(text string) (*sigparser.Entry, error)
}

// part selects the optional sections a converter fills in.
type part uint16

const (
	partCode part = 1 << iota
	partSignatures
	partExtends
	partImplements
	partTParams
	partParams
	partReturns
	partType
	partTitle
)

// Converter turns one raw entry into a processed entry.
type Converter interface {
	Process(raw *rawdoc.Entry) (*Entry, error)
}

type entryConverter struct {
	kind  rawdoc.Kind
	parts part

	text *TextConverter
	inc  IncludeLoader
	sigs SignatureParser
	log  *slog.Logger
}

// converterParts lists the sections each kind documents.
var converterParts = map[rawdoc.Kind]part{
	rawdoc.KindClass:                 partCode | partSignatures | partExtends | partImplements | partTParams,
	rawdoc.KindConcept:               partCode | partSignatures | partExtends,
	rawdoc.KindEnum:                  partCode | partSignatures,
	rawdoc.KindAdaption:              partCode,
	rawdoc.KindGlobalTypedef:         partCode,
	rawdoc.KindMemberTypedef:         partCode,
	rawdoc.KindGroupedTypedef:        partCode,
	rawdoc.KindGlobalFunction:        partCode | partSignatures | partTParams | partParams | partReturns,
	rawdoc.KindMemberFunction:        partCode | partSignatures | partTParams | partParams | partReturns,
	rawdoc.KindInterfaceFunction:     partCode | partSignatures | partTParams | partParams | partReturns,
	rawdoc.KindGlobalMetafunction:    partCode | partSignatures | partTParams | partReturns,
	rawdoc.KindInterfaceMetafunction: partCode | partSignatures | partTParams | partReturns,
	rawdoc.KindMacro:                 partCode | partParams | partReturns,
	rawdoc.KindGroupedMacro:          partCode | partParams | partReturns,
	rawdoc.KindTag:                   partCode,
	rawdoc.KindGroupedTag:            partCode,
	rawdoc.KindVariable:              partCode | partSignatures | partType,
	rawdoc.KindMemberVariable:        partCode | partSignatures | partType,
	rawdoc.KindGroupedVariable:       partCode | partSignatures | partType,
	rawdoc.KindPage:                  partTitle,
	rawdoc.KindGroup:                 partTitle,
}

func newConverters(log *slog.Logger, inc IncludeLoader, sigs SignatureParser) map[rawdoc.Kind]Converter {
	text := NewTextConverter(log)
	out := make(map[rawdoc.Kind]Converter, len(converterParts))
	for kind, parts := range converterParts {
		out[kind] = &entryConverter{
			kind:  kind,
			parts: parts,
			text:  text,
			inc:   inc,
			sigs:  sigs,
			log:   log,
		}
	}
	return out
}

func (c *entryConverter) Process(raw *rawdoc.Entry) (*Entry, error) {
	e := newEntry(c.kind, raw.Name)
	e.Source = raw.Source
	log := c.log.With("entry", raw.Name)

	if len(raw.Briefs) > 0 {
		e.Brief = c.text.Convert(raw.Briefs[0], false)
	}
	if err := c.convertBody(e, raw.Body); err != nil {
		return nil, fmt.Errorf("convert body of %s: %w", raw.Name, err)
	}
	for _, see := range raw.Sees {
		target := strings.TrimSpace(see.String())
		link := doctree.NewElement("a")
		link.SetAttr("href", LinkScheme+target)
		link.AppendText(doctree.NewText(target))
		e.Sees = append(e.Sees, link)
	}

	if c.parts&partCode != 0 {
		e.Code = c.convertCode(log, raw)
	}
	if c.parts&(partExtends|partImplements) != 0 {
		e.Inheritance = newInheritance()
		for _, t := range raw.Extends {
			e.Inheritance.Extends = append(e.Inheritance.Extends, strings.TrimSpace(t.String()))
		}
		if c.parts&partImplements != 0 {
			for _, t := range raw.Implements {
				e.Inheritance.Implements = append(e.Inheritance.Implements, strings.TrimSpace(t.String()))
			}
		}
	}
	if c.parts&partTParams != 0 {
		for _, tp := range raw.TParams {
			e.TParams = append(e.TParams, TParam{Type: tp.Name, Desc: c.text.Convert(tp.Text, false)})
		}
	}
	if c.parts&partParams != 0 {
		for _, p := range raw.Params {
			e.Params = append(e.Params, Param{
				Name:  p.Name,
				InOut: parseInOut(p.InOut),
				Desc:  c.text.Convert(p.Text, false),
			})
		}
	}
	if c.parts&partReturns != 0 {
		for _, r := range raw.Returns {
			e.Returns = append(e.Returns, Return{Type: r.Type, Desc: c.text.Convert(r.Text, false)})
		}
	}
	if c.parts&partType != 0 {
		e.Type = strings.TrimSpace(raw.Type)
	}
	if c.parts&partTitle != 0 {
		e.Title = c.text.Convert(raw.Title, false)
	}
	return e, nil
}

func (c *entryConverter) convertCode(log *slog.Logger, raw *rawdoc.Entry) *CodePart {
	code := &CodePart{}
	for _, h := range raw.Headerfiles {
		code.Headerfiles = append(code.Headerfiles, strings.TrimSpace(h.String()))
	}
	for _, d := range raw.DeprecationMsgs {
		code.Deprecations = append(code.Deprecations, c.text.Convert(d, true))
	}
	for _, s := range raw.Signatures {
		code.Signatures = append(code.Signatures, c.text.Convert(s, true))
		if c.parts&partSignatures == 0 || c.sigs == nil {
			continue
		}
		sig, err := c.sigs.Parse(s.String())
		if err != nil {
			log.Warn("skipping unparsable signature", "signature", s.String(), "error", err)
			continue
		}
		code.SignatureEntries = append(code.SignatureEntries, sig)
	}
	return code
}

func (c *entryConverter) convertBody(e *Entry, items []rawdoc.Item) error {
	for _, item := range items {
		switch item.Type {
		case rawdoc.ItemParagraph:
			if strings.TrimSpace(item.Text.String()) == "" {
				continue
			}
			p := e.Body.AddChild(doctree.NewElement("p"))
			p.Children = c.text.Convert(item.Text, false).Children
		case rawdoc.ItemSection:
			level := min(max(item.Level, 1), 6)
			h := e.Body.AddChild(doctree.NewElement(fmt.Sprintf("h%d", level)))
			h.Children = c.text.Convert(item.Text, false).Children
		case rawdoc.ItemCode:
			typ, src := splitCodeType(item.Text.String())
			n := e.Body.AddChild(doctree.NewElement("code"))
			n.SetAttr("type", typ)
			n.AppendText(doctree.NewText(src))
		case rawdoc.ItemInclude:
			if c.inc == nil {
				return fmt.Errorf("include %s: no include manager", item.Path)
			}
			src, err := c.inc.LoadFile(item.Path)
			if err != nil {
				return err
			}
			n := e.Body.AddChild(doctree.NewElement("code"))
			n.SetAttr("type", filepath.Ext(item.Path))
			n.SetAttr("source", item.Path)
			n.AddChild(doctree.NewVerbatim(src))
		case rawdoc.ItemSnippet:
			if c.inc == nil {
				return fmt.Errorf("snippet %s: no include manager", item.Path)
			}
			src, err := c.inc.LoadSnippet(item.Path, item.Name)
			if err != nil {
				return err
			}
			n := e.Body.AddChild(doctree.NewElement("code"))
			n.SetAttr("type", filepath.Ext(item.Path))
			n.SetAttr("source", item.Path)
			n.AddChild(doctree.NewVerbatim(src))
		}
	}
	return nil
}

// splitCodeType separates a leading "{.ext}" marker from a code block.
// Blocks without a marker are plain text.
func splitCodeType(s string) (typ, src string) {
	if strings.HasPrefix(s, "{") {
		if end := strings.Index(s, "}"); end > 0 {
			return s[1:end], strings.TrimPrefix(s[end+1:], "\n")
		}
	}
	return ".txt", s
}

// parseInOut reads a direction tag such as "[in]", "[out]" or "[in,out]".
func parseInOut(s string) InOut {
	s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "[]"))
	s = strings.ReplaceAll(s, " ", "")
	switch s {
	case "in":
		return DirIn
	case "out":
		return DirOut
	case "in,out", "out,in":
		return DirInOut
	}
	return DirUnspecified
}

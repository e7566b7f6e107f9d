package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// YAMLParser reads raw entry records. A file holds one or more YAML
// documents, each a sequence of entries:
//
//	- command: class
//	  name: String
//	  brief: The string class.
//	  implements: [ContainerConcept]
//	  body:
//	    - paragraph: Stores a <b>sequence</b>.
//	    - snippet: demos/string.cpp
//	      name: main
type YAMLParser struct{}

// stringList accepts a scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = stringList{value.Value}
		return nil
	}
	var ss []string
	if err := value.Decode(&ss); err != nil {
		return err
	}
	*l = ss
	return nil
}

type yamlItem struct {
	Paragraph string `yaml:"paragraph"`
	Section   string `yaml:"section"`
	Level     int    `yaml:"level"`
	Code      string `yaml:"code"`
	Include   string `yaml:"include"`
	Snippet   string `yaml:"snippet"`
	Name      string `yaml:"name"`
}

type yamlParam struct {
	Name  string `yaml:"name"`
	InOut string `yaml:"inout"`
	Text  string `yaml:"text"`
}

type yamlReturn struct {
	Type string `yaml:"type"`
	Text string `yaml:"text"`
}

type yamlEntry struct {
	Command    string       `yaml:"command"`
	Name       string       `yaml:"name"`
	Brief      stringList   `yaml:"brief"`
	Body       []yamlItem   `yaml:"body"`
	See        stringList   `yaml:"see"`
	Headerfile stringList   `yaml:"headerfile"`
	Deprecated stringList   `yaml:"deprecated"`
	Signature  stringList   `yaml:"signature"`
	Extends    stringList   `yaml:"extends"`
	Implements stringList   `yaml:"implements"`
	TParam     []yamlParam  `yaml:"tparam"`
	Param      []yamlParam  `yaml:"param"`
	Return     []yamlReturn `yaml:"return"`
	Type       string       `yaml:"type"`
	Title      string       `yaml:"title"`
}

func (p *YAMLParser) Parse(r io.Reader, filename string) ([]*rawdoc.Entry, error) {
	dec := yaml.NewDecoder(r)
	var out []*rawdoc.Entry
	for doc := 0; ; doc++ {
		var records []yamlEntry
		err := dec.Decode(&records)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", filename, err)
		}
		for i, rec := range records {
			e, err := rec.entry(filename)
			if err != nil {
				return nil, fmt.Errorf("parse yaml %s: document %d entry %d: %w", filename, doc, i, err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func tokenizeAll(ss []string) []rawdoc.Text {
	if len(ss) == 0 {
		return nil
	}
	out := make([]rawdoc.Text, 0, len(ss))
	for _, s := range ss {
		out = append(out, rawdoc.Tokenize(strings.TrimSpace(s)))
	}
	return out
}

func (rec yamlEntry) entry(filename string) (*rawdoc.Entry, error) {
	if rec.Command == "" || rec.Name == "" {
		return nil, errors.New("command and name are required")
	}
	e := &rawdoc.Entry{
		Command:         rawdoc.Command(strings.TrimPrefix(rec.Command, "@")),
		Name:            strings.TrimSpace(rec.Name),
		Briefs:          tokenizeAll(rec.Brief),
		Sees:            tokenizeAll(rec.See),
		Headerfiles:     tokenizeAll(rec.Headerfile),
		DeprecationMsgs: tokenizeAll(rec.Deprecated),
		Signatures:      tokenizeAll(rec.Signature),
		Extends:         tokenizeAll(rec.Extends),
		Implements:      tokenizeAll(rec.Implements),
		Type:            rec.Type,
		Title:           rawdoc.Tokenize(strings.TrimSpace(rec.Title)),
		Source:          filename,
	}
	for _, tp := range rec.TParam {
		e.TParams = append(e.TParams, rawdoc.TParam{Name: tp.Name, Text: rawdoc.Tokenize(strings.TrimSpace(tp.Text))})
	}
	for _, p := range rec.Param {
		e.Params = append(e.Params, rawdoc.Param{Name: p.Name, InOut: p.InOut, Text: rawdoc.Tokenize(strings.TrimSpace(p.Text))})
	}
	for _, r := range rec.Return {
		e.Returns = append(e.Returns, rawdoc.Return{Type: r.Type, Text: rawdoc.Tokenize(strings.TrimSpace(r.Text))})
	}
	for i, it := range rec.Body {
		item, err := it.item()
		if err != nil {
			return nil, fmt.Errorf("body item %d: %w", i, err)
		}
		e.Body = append(e.Body, item)
	}
	return e, nil
}

func (it yamlItem) item() (rawdoc.Item, error) {
	switch {
	case it.Paragraph != "":
		return rawdoc.Item{Type: rawdoc.ItemParagraph, Text: rawdoc.Tokenize(strings.TrimSpace(it.Paragraph))}, nil
	case it.Section != "":
		level := it.Level
		if level == 0 {
			level = 1
		}
		return rawdoc.Item{Type: rawdoc.ItemSection, Text: rawdoc.Tokenize(strings.TrimSpace(it.Section)), Level: level}, nil
	case it.Code != "":
		return rawdoc.Item{Type: rawdoc.ItemCode, Text: rawdoc.Tokenize(strings.TrimRight(it.Code, "\n"))}, nil
	case it.Include != "":
		return rawdoc.Item{Type: rawdoc.ItemInclude, Path: it.Include}, nil
	case it.Snippet != "":
		if it.Name == "" {
			return rawdoc.Item{}, fmt.Errorf("snippet %s: name is required", it.Snippet)
		}
		return rawdoc.Item{Type: rawdoc.ItemSnippet, Path: it.Snippet, Name: it.Name}, nil
	}
	return rawdoc.Item{}, errors.New("empty body item")
}

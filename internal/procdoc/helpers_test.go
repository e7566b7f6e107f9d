package procdoc

import (
	"bytes"
	"log/slog"

	"github.com/dgallion1/dox/internal/incmgr"
	"github.com/dgallion1/dox/internal/rawdoc"
	"github.com/dgallion1/dox/internal/sigparser"
)

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return log, &buf
}

func txt(s string) rawdoc.Text { return rawdoc.Tokenize(s) }

func txts(ss ...string) []rawdoc.Text {
	out := make([]rawdoc.Text, 0, len(ss))
	for _, s := range ss {
		out = append(out, txt(s))
	}
	return out
}

func raw(cmd rawdoc.Command, name string, opts ...func(*rawdoc.Entry)) *rawdoc.Entry {
	e := &rawdoc.Entry{Command: cmd, Name: name}
	for _, o := range opts {
		o(e)
	}
	return e
}

func extends(names ...string) func(*rawdoc.Entry) {
	return func(e *rawdoc.Entry) { e.Extends = txts(names...) }
}

func implements(names ...string) func(*rawdoc.Entry) {
	return func(e *rawdoc.Entry) { e.Implements = txts(names...) }
}

func ofType(typ string) func(*rawdoc.Entry) {
	return func(e *rawdoc.Entry) { e.Type = typ }
}

func sees(names ...string) func(*rawdoc.Entry) {
	return func(e *rawdoc.Entry) { e.Sees = txts(names...) }
}

type fakeIncludes map[string]string

func (f fakeIncludes) LoadFile(path string) (string, error) {
	if s, ok := f[path]; ok {
		return s, nil
	}
	return "", &incmgr.IncludeError{Path: path, Err: incmgr.ErrNotFound}
}

func (f fakeIncludes) LoadSnippet(path, name string) (string, error) {
	if s, ok := f[path+"#"+name]; ok {
		return s, nil
	}
	return "", &incmgr.IncludeError{Path: path, Snippet: name, Err: incmgr.ErrNotFound}
}

func run(entries ...*rawdoc.Entry) (*Doc, error) {
	log, _ := testLogger()
	return NewProcessor(log, fakeIncludes{}, sigparser.Parser{}, Options{}).Run(&rawdoc.Doc{Entries: entries})
}

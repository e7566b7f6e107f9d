package parser

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// pageBuilder assembles a page entry from a stream of headings,
// paragraphs and code blocks. The first level-1 heading becomes the title.
type pageBuilder struct {
	e      *rawdoc.Entry
	titled bool
}

func newPage(filename string) *pageBuilder {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &pageBuilder{e: &rawdoc.Entry{
		Command: rawdoc.CmdPage,
		Name:    name,
		Title:   rawdoc.Tokenize(name),
		Source:  filename,
	}}
}

func (b *pageBuilder) heading(level int, markup string) {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return
	}
	if level == 1 && !b.titled && len(b.e.Body) == 0 {
		b.e.Title = rawdoc.Tokenize(markup)
		b.titled = true
		return
	}
	b.e.Body = append(b.e.Body, rawdoc.Item{
		Type:  rawdoc.ItemSection,
		Text:  rawdoc.Tokenize(markup),
		Level: level,
	})
}

// paragraph adds a paragraph. Paragraphs that start with @brief, @see,
// @include or @snippet are read as those directives instead.
func (b *pageBuilder) paragraph(markup string) {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return
	}
	cmd, rest, _ := strings.Cut(markup, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "@brief":
		b.e.Briefs = append(b.e.Briefs, rawdoc.Tokenize(rest))
		return
	case "@see":
		for _, target := range strings.Split(rest, ",") {
			if target = strings.TrimSpace(target); target != "" {
				b.e.Sees = append(b.e.Sees, rawdoc.Tokenize(target))
			}
		}
		return
	case "@include":
		if rest != "" {
			b.e.Body = append(b.e.Body, rawdoc.Item{Type: rawdoc.ItemInclude, Path: rest})
			return
		}
	case "@snippet":
		if path, name, ok := strings.Cut(rest, " "); ok {
			b.e.Body = append(b.e.Body, rawdoc.Item{
				Type: rawdoc.ItemSnippet,
				Path: path,
				Name: strings.TrimSpace(name),
			})
			return
		}
	}
	b.e.Body = append(b.e.Body, rawdoc.Item{Type: rawdoc.ItemParagraph, Text: rawdoc.Tokenize(markup)})
}

// code adds a code block. lang is a file extension or language name.
func (b *pageBuilder) code(lang, src string) {
	src = strings.TrimRight(src, "\n")
	if lang != "" {
		if !strings.HasPrefix(lang, ".") {
			lang = "." + lang
		}
		src = "{" + lang + "}\n" + src
	}
	b.e.Body = append(b.e.Body, rawdoc.Item{Type: rawdoc.ItemCode, Text: rawdoc.Tokenize(src)})
}

func (b *pageBuilder) entries() []*rawdoc.Entry {
	return []*rawdoc.Entry{b.e}
}

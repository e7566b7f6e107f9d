package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// TextParser reads plain text pages. Blank lines separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]*rawdoc.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	page := newPage(filename)
	if err := addParagraphs(page, string(data)); err != nil {
		return nil, err
	}
	return page.entries(), nil
}

// addParagraphs adds the blank-line separated paragraphs of text to page.
func addParagraphs(page *pageBuilder, text string) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				page.paragraph(current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		page.paragraph(current.String())
	}
	return scanner.Err()
}

package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/dox/internal/rawdoc"
)

// DOCXParser reads .docx pages. Heading styles become sections; bold and
// italic runs keep their formatting.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]*rawdoc.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	page := newPage(filename)
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphMarkup(para)
		if text == "" {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			page.heading(level, text)
		} else {
			page.paragraph(text)
		}
	}
	return page.entries(), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if rest, ok := strings.CutPrefix(style, "heading"); ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
		return int(rest[0] - '0')
	}
	return 0
}

func docxParagraphMarkup(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var text strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				text.WriteString(t.Text)
			}
		}
		s := text.String()
		if s == "" {
			continue
		}
		if props := run.RunProperties; props != nil {
			if props.Italic != nil {
				s = "<i>" + s + "</i>"
			}
			if props.Bold != nil {
				s = "<b>" + s + "</b>"
			}
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}

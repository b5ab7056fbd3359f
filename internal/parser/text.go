package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Arjun231730/text-audio/internal/document"
)

// TextParser handles plain text files. Form feeds are honored as page
// separators; otherwise the whole file is a single page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	doc := &document.Document{Title: titleFromFilename(filename)}
	for _, page := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

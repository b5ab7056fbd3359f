// Package document holds the extracted text of one uploaded file.
package document

import "strings"

// Document is the output of a parser: per-page extracted text in reading
// order. Pages with no extractable text are omitted by the parsers.
type Document struct {
	Title string
	Pages []string
}

// RawText concatenates the page text, pages joined by a line break. This is
// the single string the segmenter consumes.
func (d *Document) RawText() string {
	return strings.Join(d.Pages, "\n")
}

// Empty reports whether the document contains no extractable text.
func (d *Document) Empty() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

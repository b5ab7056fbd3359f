package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Arjun231730/text-audio/internal/document"
)

// MarkdownParser handles Markdown files using goldmark. Headings and block
// text are flattened into reading order; each top-level heading starts a
// new page.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &document.Document{Title: titleFromFilename(filename)}

	var page strings.Builder
	flushPage := func() {
		if t := strings.TrimSpace(page.String()); t != "" {
			doc.Pages = append(doc.Pages, t)
		}
		page.Reset()
	}
	appendBlock := func(t string) {
		if t == "" {
			return
		}
		if page.Len() > 0 {
			page.WriteString("\n")
		}
		page.WriteString(t)
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if h.Level == 1 {
				flushPage()
			}
			appendBlock(string(h.Text(src)))
			continue
		}
		appendBlock(blockText(n, src))
	}
	flushPage()

	return doc, nil
}

// blockText gets the plain text content of a goldmark AST node. A block's
// source lines and its parsed inline children carry the same text, so only
// one of the two is emitted.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.FirstChild() == nil {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			if buf.Len() > 0 && c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

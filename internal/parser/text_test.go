package parser

import (
	"strings"
	"testing"
)

func TestTextParser_SinglePage(t *testing.T) {
	input := "Q1. What is X? Answer: X is Y.\nQ2. What is Z?"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "quiz.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "quiz" {
		t.Errorf("expected title %q, got %q", "quiz", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	if doc.RawText() != input {
		t.Errorf("expected raw text %q, got %q", input, doc.RawText())
	}
}

func TestTextParser_FormFeedSeparatesPages(t *testing.T) {
	input := "page one text\fpage two text\fpage three text"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "multi.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	// Pages join with a line break in the raw text.
	want := "page one text\npage two text\npage three text"
	if doc.RawText() != want {
		t.Errorf("expected raw text %q, got %q", want, doc.RawText())
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
	if !doc.Empty() {
		t.Error("expected Empty() to report true")
	}
}

func TestTextParser_BlankPagesSkipped(t *testing.T) {
	input := "real content\f   \n \fmore content"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages (blank page skipped), got %d", len(doc.Pages))
	}
}

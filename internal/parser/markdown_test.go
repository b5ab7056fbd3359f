package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_FlattensInReadingOrder(t *testing.T) {
	input := `# Practice Quiz

Q1. What is X? Answer: X is Y.

Q2. What is Z? Explanation: Z means W.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "quiz.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "quiz" {
		t.Errorf("expected title %q, got %q", "quiz", doc.Title)
	}

	raw := doc.RawText()
	q1 := strings.Index(raw, "Q1.")
	q2 := strings.Index(raw, "Q2.")
	if q1 < 0 || q2 < 0 {
		t.Fatalf("expected both questions in raw text, got %q", raw)
	}
	if q1 > q2 {
		t.Errorf("expected Q1 before Q2 in raw text, got %q", raw)
	}
	if n := strings.Count(raw, "Q1."); n != 1 {
		t.Errorf("expected Q1 marker exactly once, got %d in %q", n, raw)
	}
}

func TestMarkdownParser_TopLevelHeadingsStartPages(t *testing.T) {
	input := `# Part One

First part content.

# Part Two

Second part content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "parts.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if !strings.Contains(doc.Pages[0], "First part content.") {
		t.Errorf("page 0: expected first part content, got %q", doc.Pages[0])
	}
	if !strings.Contains(doc.Pages[1], "Second part content.") {
		t.Errorf("page 1: expected second part content, got %q", doc.Pages[1])
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(doc.Pages))
	}
}

// Package lesson turns raw extracted document text into narration scripts,
// one per question. Segmentation, cleaning and script composition are pure
// functions with no I/O; they never fail, degrading to placeholders instead.
package lesson

// Lesson is one question unit ready for narration.
type Lesson struct {
	// Label identifies the question, e.g. "Q12". Never empty: a literal
	// "Question" placeholder is substituted when no marker is found.
	Label string

	// QuestionAndAnswer is the cleaned question body, with any "Answer:"
	// section folded in behind a spoken connective. Always present.
	QuestionAndAnswer string

	// Explanation is the cleaned text after an "Explanation:" marker.
	// Empty when the question has none.
	Explanation string

	// Script is the composed narration, filled in after segmentation.
	Script string
}

package lesson

import (
	"regexp"
	"strings"
)

// markerRe matches the start of a question: "Q" plus digits plus a period,
// e.g. "Q1." or "Q37.". The stricter letter-prefixed form is used so that
// decimal numbers inside question bodies never open a new segment.
var markerRe = regexp.MustCompile(`Q\d+\.`)

const (
	explanationMarker = "Explanation:"
	answerMarker      = "Answer:"
	answerConnective  = "The answer is: "

	// DefaultMinSegmentLen is the trimmed length below which a chunk is
	// discarded as a stray match rather than a real question.
	DefaultMinSegmentLen = 10

	// placeholderLabel stands in when a chunk passes the marker filter
	// but the label search still finds nothing.
	placeholderLabel = "Question"
)

// Segment splits raw extracted document text into one Lesson per question,
// in document order. Segmentation is two-pass: first every marker offset is
// located, then the text between consecutive offsets is sliced, so the
// marker always stays with the chunk it opens. Text before the first marker
// is discarded. Chunks whose trimmed length is below minLen are dropped;
// minLen <= 0 selects DefaultMinSegmentLen.
//
// Input with no markers yields an empty (nil) slice, which is not an error.
// The Script field of each Lesson is left empty for ComposeScript.
func Segment(rawText string, minLen int) []Lesson {
	if minLen <= 0 {
		minLen = DefaultMinSegmentLen
	}

	offsets := markerRe.FindAllStringIndex(rawText, -1)
	var lessons []Lesson
	for i, loc := range offsets {
		end := len(rawText)
		if i+1 < len(offsets) {
			end = offsets[i+1][0]
		}
		chunk := strings.TrimSpace(rawText[loc[0]:end])
		if len(chunk) < minLen {
			continue
		}
		// Chunks start at a marker offset by construction; keep the
		// filter anyway so a changed grammar cannot let junk through.
		if m := markerRe.FindStringIndex(chunk); m == nil || m[0] != 0 {
			continue
		}
		lessons = append(lessons, buildLesson(chunk))
	}
	return lessons
}

// buildLesson extracts the label from a chunk and splits its body into the
// question/answer part and the optional explanation part. It never fails:
// a chunk with no findable marker gets the placeholder label and its whole
// body as the question.
func buildLesson(chunk string) Lesson {
	label := placeholderLabel
	body := chunk
	if m := markerRe.FindStringIndex(chunk); m != nil {
		label = strings.TrimSuffix(chunk[m[0]:m[1]], ".")
		body = chunk[m[1]:]
	}

	qa, explanation := splitBody(body)
	return Lesson{
		Label:             label,
		QuestionAndAnswer: Clean(qa),
		Explanation:       Clean(explanation),
	}
}

// splitBody divides a chunk body at its first "Explanation:" or "Answer:"
// marker. "Explanation:" always wins when both are present, even if
// "Answer:" occurs earlier in the text; the answer text then stays inside
// the question/answer part. With neither marker the whole body is the
// question/answer part.
func splitBody(body string) (qa, explanation string) {
	if i := strings.Index(body, explanationMarker); i >= 0 {
		return body[:i], body[i+len(explanationMarker):]
	}
	if i := strings.Index(body, answerMarker); i >= 0 {
		return body[:i] + answerConnective + body[i+len(answerMarker):], ""
	}
	return body, ""
}

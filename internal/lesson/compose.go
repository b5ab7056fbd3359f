package lesson

import (
	"fmt"
	"strings"
)

// Narration template fragments. The phrasing is fixed; the only branch is
// whether the question carries an explanation.
const (
	introTemplate       = "Okay, let's look at %s. The question asks: %s. "
	explanationTemplate = " Now, let's understand the details behind this. %s  So, that is the core concept here. "
	noExplanationClose  = " That covers the complete answer for this question. "
)

// ComposeScript renders one lesson into its narration string. It is pure,
// branch-free apart from the explanation check, and never returns an empty
// string, even for all-empty inputs.
func ComposeScript(label, questionAndAnswer, explanation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, introTemplate, label, questionAndAnswer)
	if explanation != "" {
		fmt.Fprintf(&b, explanationTemplate, explanation)
	} else {
		b.WriteString(noExplanationClose)
	}
	return b.String()
}

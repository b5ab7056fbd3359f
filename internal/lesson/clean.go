package lesson

import (
	"regexp"
	"strings"
)

var (
	lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

	// Citation and markup artifacts left behind by text extraction,
	// e.g. "<2>" or "[14]". Removed as whole tokens.
	bracketRe = regexp.MustCompile(`<[^<>]*>|\[[^\[\]]*\]`)

	// Dash-delimited page banners, e.g. "--- PAGE 3 ---".
	pageBannerRe = regexp.MustCompile(`-+\s*PAGE\s+\d+\s*-+`)

	// Everything outside the speakable allow-list: letters, digits,
	// whitespace and . , ? ! : ; ' -
	disallowedRe = regexp.MustCompile(`[^a-zA-Z0-9\s.,?!:;'-]`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean normalizes extracted text into a speech-safe string: line breaks
// become spaces, extraction artifacts are stripped, characters outside the
// allow-list are dropped outright, and whitespace runs collapse to single
// spaces. Clean is total and idempotent; empty or whitespace-only input
// yields "".
//
// Banners are stripped after the allow-list filter, and repeatedly until
// none remain: removing one banner (or a disallowed character) can splice
// together text that reads as another banner.
func Clean(s string) string {
	s = lineBreaks.Replace(s)
	s = bracketRe.ReplaceAllString(s, " ")
	s = disallowedRe.ReplaceAllString(s, "")
	for {
		next := pageBannerRe.ReplaceAllString(s, " ")
		if next == s {
			break
		}
		s = next
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

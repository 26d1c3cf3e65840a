// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"regexp"
	"strings"
)

// Extraction artifacts we repair before sending text to the model:
//   - "infor-\nmation"  -> "information\n"   (hyphenated across a line break)
//   - "infor- mation"   -> "information"     (hyphen then space on one line)
//   - "ExperienceGoogle" -> "Experience Google" (layout-unaware glue)
//   - "Engineer2020"     -> "Engineer 2020"    (letter/digit glue)
var (
	lineBreakHyphen = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	inlineHyphen    = regexp.MustCompile(`(\w+)-\s+(\w+)`)
	lowerUpperGlue  = regexp.MustCompile(`([a-z])([A-Z])`)
	letterDigitGlue = regexp.MustCompile(`([a-zA-Z])(\d)`)
	digitLetterGlue = regexp.MustCompile(`(\d)([a-zA-Z])`)
)

// CleanText repairs text-extraction artifacts in raw document text.
// It never fails; empty input yields empty output. Applying it twice
// yields the same result as applying it once.
func CleanText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := raw

	// Rejoin words hyphenated across a line break, keeping the break
	// after the joined word so line structure survives for the
	// line-based bullet heuristics downstream. ReplaceAllString is
	// non-overlapping: the whitespace consumed by one match hides the
	// next chained artifact, so repeat until the text stops changing.
	for {
		repaired := lineBreakHyphen.ReplaceAllString(text, "$1$2\n")
		repaired = inlineHyphen.ReplaceAllString(repaired, "$1$2")
		if repaired == text {
			break
		}
		text = repaired
	}

	// Split glued word boundaries
	text = lowerUpperGlue.ReplaceAllString(text, "$1 $2")
	text = letterDigitGlue.ReplaceAllString(text, "$1 $2")
	text = digitLetterGlue.ReplaceAllString(text, "$1 $2")

	return text
}

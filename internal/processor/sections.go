// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import "strings"

// maxSectionSize caps how much cleaned text goes into one completion
// prompt. Documents under the cap are sent whole; longer ones are split
// at paragraph or sentence boundaries and their records merged the same
// way multi-page results are.
const maxSectionSize = 12000

// splitSections breaks oversized text into sections no longer than
// maxSectionSize, preferring a paragraph break, then a sentence ending,
// and cutting mid-text only when neither exists in the window. Sections
// do not overlap: overlapping text would duplicate entries in the merge.
func splitSections(text string) []string {
	if len(text) <= maxSectionSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var sections []string
	start := 0

	for start < len(text) {
		end := start + maxSectionSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = sectionBreak(text, start, end)
		}

		section := strings.TrimSpace(text[start:end])
		if section != "" {
			sections = append(sections, section)
		}
		start = end
	}

	return sections
}

// sectionBreak finds the best split point at or before end, searching
// backward through the last quarter of the window
func sectionBreak(text string, start, end int) int {
	searchStart := end - maxSectionSize/4
	if searchStart < start {
		searchStart = start
	}

	// Paragraph break first
	if idx := strings.LastIndex(text[searchStart:end], "\n\n"); idx >= 0 {
		return searchStart + idx + 2
	}

	// Then a sentence ending followed by whitespace
	for i := end - 1; i > searchStart; i-- {
		c := text[i-1]
		if (c == '.' || c == '!' || c == '?') && isSpaceByte(text[i]) {
			return i
		}
	}

	// Then any line break
	if idx := strings.LastIndexByte(text[searchStart:end], '\n'); idx >= 0 {
		return searchStart + idx + 1
	}

	return end
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

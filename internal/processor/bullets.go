// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"regexp"
	"strings"
)

// Bullet extraction runs a fixed cascade of strategies over a free-text
// block and takes the first strategy that yields at least one usable item.
// The cascade order is the tie-break policy: an explicitly bulleted list
// always beats sentence splitting, which beats line splitting, and so on.

var (
	bulletMarker   = regexp.MustCompile(`^\s*[•\-\*\+‣▪◦]\s*`)
	numberedMarker = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	anyMarker      = regexp.MustCompile(`^\s*(?:[•\-\*\+‣▪◦]|\d+[.)])\s*`)
	clauseSplit    = regexp.MustCompile(`;\s*|,\s+`)
)

// actionVerbs are common resume statement openers. A sentence starting
// with one of these is kept even when it is short.
var actionVerbs = []string{
	"Developed", "Implemented", "Led", "Built", "Designed", "Managed",
	"Created", "Architected", "Improved", "Reduced", "Increased",
	"Optimized", "Automated", "Launched", "Delivered", "Maintained",
	"Collaborated", "Mentored", "Migrated", "Deployed", "Integrated",
	"Analyzed", "Researched", "Organized", "Coordinated", "Spearheaded",
}

// ExtractBulletPoints segments a free-text description into discrete
// statements. For any non-empty input the result is non-empty: the final
// strategy falls back to the whole trimmed text as a single item.
func ExtractBulletPoints(description string) []string {
	text := strings.TrimSpace(description)
	if text == "" {
		return []string{}
	}

	strategies := []func(string) []string{
		splitBulletedLines,
		splitNumberedLines,
		splitSentences,
		splitPlainLines,
		splitClauses,
	}

	var items []string
	for _, strategy := range strategies {
		if items = strategy(text); len(items) > 0 {
			break
		}
	}
	if len(items) == 0 {
		// Fallback: the whole text as a single statement
		items = []string{text}
	}

	return postProcessBullets(items)
}

// splitBulletedLines handles lines that start with a bullet glyph
func splitBulletedLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !bulletMarker.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		if len(item) > 5 {
			items = append(items, item)
		}
	}
	return items
}

// splitNumberedLines handles "1. " / "2) " style lists
func splitNumberedLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !numberedMarker.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(numberedMarker.ReplaceAllString(line, ""))
		if len(item) > 5 {
			items = append(items, item)
		}
	}
	return items
}

// splitSentences splits on sentence terminators and keeps sentences that
// either open with a known action verb or are longer than 20 characters.
// Only accepted when more than one sentence qualifies, otherwise the text
// is probably a single statement and a later strategy should handle it.
func splitSentences(text string) []string {
	sentences := splitOnTerminators(text)
	var items []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if startsWithActionVerb(s) || len(s) > 20 {
			items = append(items, s)
		}
	}
	if len(items) <= 1 {
		return nil
	}
	return items
}

// splitOnTerminators splits text on '.', '!', '?'
func splitOnTerminators(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentences = append(sentences, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		sentences = append(sentences, b.String())
	}
	return sentences
}

func startsWithActionVerb(sentence string) bool {
	for _, verb := range actionVerbs {
		if strings.HasPrefix(sentence, verb+" ") || sentence == verb {
			return true
		}
	}
	return false
}

// splitPlainLines treats each non-empty line as a statement when the text
// has several substantial lines but no other visible structure
func splitPlainLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			items = append(items, line)
		}
	}
	if len(items) <= 1 {
		return nil
	}
	return items
}

// splitClauses breaks long unpunctuated text on ';' and ', ' boundaries
func splitClauses(text string) []string {
	if len(text) <= 100 {
		return nil
	}
	var items []string
	for _, clause := range clauseSplit.Split(text, -1) {
		clause = strings.TrimSpace(clause)
		if len(clause) > 15 {
			items = append(items, clause)
		}
	}
	if len(items) <= 1 {
		return nil
	}
	return items
}

// postProcessBullets applies the output invariants regardless of which
// strategy fired: strip residual list markers, deduplicate keeping the
// first occurrence, and drop near-empty items.
func postProcessBullets(items []string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, item := range items {
		item = strings.TrimSpace(anyMarker.ReplaceAllString(item, ""))
		if len(item) <= 3 {
			continue
		}
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrExtractionFailed wraps every text-extraction failure so callers can
// distinguish a bad document from a pipeline problem.
var ErrExtractionFailed = errors.New("text extraction failed")

// ExtractText routes a file to the appropriate extractor based on its
// extension and returns the raw text. The text still carries layout
// artifacts; the processor's cleanup stage deals with those.
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var text string
	var err error

	switch ext {
	case ".pdf":
		text, err = parsePDF(filePath)
	case ".docx":
		text, err = parseDOCX(filePath)
	case ".txt", ".md":
		text, err = parseText(filePath)
	case ".html", ".htm":
		text, err = parseHTML(filePath)
	case ".eml":
		text, err = parseEmail(filePath)
	default:
		return "", fmt.Errorf("%w: unsupported file type %s", ErrExtractionFailed, ext)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return text, nil
}

// IsSupportedFile checks whether a file extension has an extractor
func IsSupportedFile(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	supported := []string{".pdf", ".docx", ".txt", ".md", ".html", ".htm", ".eml"}
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

// IsTemporaryFile checks if a file is an editor/OS temporary file
// (e.g. ~$resume.docx) that should never be parsed
func IsTemporaryFile(filePath string) bool {
	base := filepath.Base(filePath)
	if strings.HasPrefix(base, "~$") {
		return true
	}
	if strings.HasPrefix(base, "._") {
		return true
	}
	if strings.HasSuffix(base, ".tmp") {
		return true
	}
	return false
}

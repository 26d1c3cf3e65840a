// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// parsePDF extracts text from a PDF file using go-fitz (MuPDF)
func parsePDF(filePath string) (string, error) {
	doc, err := fitz.New(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	numPages := doc.NumPage()

	for i := 0; i < numPages; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			// Skip unreadable pages, the rest may still be usable
			continue
		}
		textBuilder.WriteString(pageText)
		if i < numPages-1 {
			textBuilder.WriteString("\n\n")
		}
	}

	extractedText := strings.TrimSpace(textBuilder.String())
	if extractedText == "" {
		return "", fmt.Errorf("no text extracted from PDF: %s", filePath)
	}

	return extractedText, nil
}

// RenderPDFPages rasterizes every page of a PDF to PNG bytes for the
// page-by-page vision flow. Used for scanned resumes where text
// extraction comes back empty.
func RenderPDFPages(filePath string) ([][]byte, error) {
	doc, err := fitz.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([][]byte, 0, numPages)

	for i := 0; i < numPages; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to render page %d: %v", ErrExtractionFailed, i+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: failed to encode page %d: %v", ErrExtractionFailed, i+1, err)
		}
		pages = append(pages, buf.Bytes())
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages: %s", ErrExtractionFailed, filePath)
	}

	return pages, nil
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"context"
	"errors"
	"log"
)

// Page is one page of a multi-page document headed into the pipeline.
// Either Text or Image is set; image pages go through the vision call.
type Page struct {
	Text     string
	Image    []byte
	MimeType string
}

// ParseFromText runs the complete text pipeline: artifact cleanup, then
// the structuring attempt loop. This is the primary entry point for
// single-document parsing. Text too long for a single prompt is split
// into sections and handled like a multi-page document.
func (s *Structurer) ParseFromText(ctx context.Context, rawText string) (*ProfileRecord, error) {
	cleaned := CleanText(rawText)

	sections := splitSections(cleaned)
	if len(sections) > 1 {
		log.Printf("ParseFromText: splitting %d chars into %d sections", len(cleaned), len(sections))
		pages := make([]Page, len(sections))
		for i, section := range sections {
			pages[i] = Page{Text: section}
		}
		return s.ParseFromPages(ctx, pages)
	}

	return s.StructureText(ctx, cleaned)
}

// ParseFromPages maps each page through the structuring pipeline and
// merges the per-page records. Individual page failures are tolerated as
// long as at least one page yields a meaningful record; a terminal
// transport failure still aborts immediately.
func (s *Structurer) ParseFromPages(ctx context.Context, pages []Page) (*ProfileRecord, error) {
	if len(pages) == 0 {
		return nil, &InsufficientDataError{Attempts: 0}
	}

	var records []*ProfileRecord
	var lastErr error
	attempts := 0

	for i, page := range pages {
		var record *ProfileRecord
		var err error

		if len(page.Image) > 0 {
			record, err = s.StructurePage(ctx, page.Image, page.MimeType, i+1, len(pages))
		} else {
			record, err = s.StructureText(ctx, CleanText(page.Text))
		}

		if err != nil {
			var unavailable *ServiceUnavailableError
			if errors.As(err, &unavailable) || ctx.Err() != nil {
				return nil, err
			}
			log.Printf("ParseFromPages: page %d/%d failed, continuing: %v", i+1, len(pages), err)
			// Count the attempts this page actually consumed
			var insufficient *InsufficientDataError
			if errors.As(err, &insufficient) {
				attempts += insufficient.Attempts
			} else {
				attempts += s.maxAttempts
			}
			lastErr = err
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &InsufficientDataError{Attempts: attempts, LastCause: lastErr}
	}

	merged := MergePages(records)
	if !merged.IsMeaningful() {
		return nil, &InsufficientDataError{Attempts: attempts, LastCause: lastErr}
	}
	return merged, nil
}

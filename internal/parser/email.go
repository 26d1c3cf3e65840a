// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/mnako/letters"
)

// parseEmail extracts text from an EML file. Recruiters forward resumes
// as emails often enough that this path earns its keep; the subject and
// sender lines frequently carry the candidate's name and address.
func parseEmail(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open EML file: %w", err)
	}
	defer file.Close()

	email, err := letters.ParseEmail(file)
	if err != nil {
		return "", fmt.Errorf("failed to parse EML file: %w", err)
	}

	var builder strings.Builder

	if email.Headers.Subject != "" {
		builder.WriteString(fmt.Sprintf("Subject: %s\n", email.Headers.Subject))
	}
	if len(email.Headers.From) > 0 {
		from := email.Headers.From[0]
		if from.Name != "" {
			builder.WriteString(fmt.Sprintf("Sender: %s <%s>\n", from.Name, from.Address))
		} else {
			builder.WriteString(fmt.Sprintf("Sender: %s\n", from.Address))
		}
	}

	builder.WriteString("\n")

	// Prefer the text body, fall back to HTML
	if email.Text != "" {
		builder.WriteString(email.Text)
	} else if email.HTML != "" {
		builder.WriteString(email.HTML)
	}

	result := strings.TrimSpace(builder.String())
	if result == "" {
		return "", fmt.Errorf("no content extracted from EML: %s", filePath)
	}

	return result, nil
}

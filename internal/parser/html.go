package parser

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
)

// parseHTML extracts text from an HTML resume export, dropping script
// and style content
func parseHTML(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Text()
	if text == "" {
		return "", fmt.Errorf("no text extracted from HTML: %s", filePath)
	}

	return text, nil
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractBulletPoints_BulletedLines(t *testing.T) {
	input := "• Developed the billing service\n• Reduced costs by 20%\n* Mentored two juniors"
	got := ExtractBulletPoints(input)

	want := []string{
		"Developed the billing service",
		"Reduced costs by 20%",
		"Mentored two juniors",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bulleted lines mismatch.\n got: %v\nwant: %v", got, want)
	}
}

func TestExtractBulletPoints_NumberedLines(t *testing.T) {
	input := "1. Shipped the mobile app\n2) Grew DAU to 50k users"
	got := ExtractBulletPoints(input)

	want := []string{"Shipped the mobile app", "Grew DAU to 50k users"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("numbered lines mismatch.\n got: %v\nwant: %v", got, want)
	}
}

func TestExtractBulletPoints_BulletStrategyWinsOverSentences(t *testing.T) {
	// The bulleted line should win the cascade even though the trailing
	// text would also split into sentences on its own
	input := "• Led team.\nDeveloped X for the data platform. Improved Y by 30% across the org."
	got := ExtractBulletPoints(input)

	if len(got) != 1 {
		t.Fatalf("expected exactly 1 item from the bullet strategy, got %d: %v", len(got), got)
	}
	if got[0] != "Led team." {
		t.Errorf("expected %q, got %q", "Led team.", got[0])
	}
}

func TestExtractBulletPoints_SentenceSegmentation(t *testing.T) {
	input := "Developed a dashboard. Improved load time by 40%. Onboarded 3 teammates."
	got := ExtractBulletPoints(input)

	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	// Each item keeps its terminal punctuation
	for _, item := range got {
		if !strings.HasSuffix(item, ".") {
			t.Errorf("sentence lost its terminal punctuation: %q", item)
		}
	}
	if got[0] != "Developed a dashboard." {
		t.Errorf("unexpected first sentence: %q", got[0])
	}
}

func TestExtractBulletPoints_LineBreakSplitting(t *testing.T) {
	input := "Worked on backend services\nHandled production incidents\nWrote internal tooling"
	got := ExtractBulletPoints(input)

	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(got), got)
	}
}

func TestExtractBulletPoints_ClauseSplitting(t *testing.T) {
	input := "Responsible for the payment gateway integration across three regional markets; " +
		"coordinated with the compliance group on PCI requirements; maintained vendor relationships throughout"
	got := ExtractBulletPoints(input)

	if len(got) < 2 {
		t.Fatalf("expected clause splitting to produce multiple items, got %d: %v", len(got), got)
	}
}

func TestExtractBulletPoints_FallbackSingleItem(t *testing.T) {
	input := "Ran the weekly sync"
	got := ExtractBulletPoints(input)

	if len(got) != 1 || got[0] != "Ran the weekly sync" {
		t.Errorf("expected whole-text fallback, got: %v", got)
	}
}

func TestExtractBulletPoints_Deduplication(t *testing.T) {
	input := "• Automated the release pipeline\n• Automated the release pipeline\n• Wrote the deploy runbook"
	got := ExtractBulletPoints(input)

	want := []string{"Automated the release pipeline", "Wrote the deploy runbook"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedup mismatch.\n got: %v\nwant: %v", got, want)
	}
}

func TestExtractBulletPoints_NonEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{
		"short note here",
		"• Only one bullet item here",
		"A single long sentence without any list structure at all in it",
	}
	for _, input := range inputs {
		got := ExtractBulletPoints(input)
		if len(got) == 0 {
			t.Errorf("expected non-empty result for %q", input)
		}
		for _, item := range got {
			if len(item) <= 3 {
				t.Errorf("item too short survived post-processing: %q (input %q)", item, input)
			}
		}
	}
}

func TestExtractBulletPoints_EmptyInput(t *testing.T) {
	if got := ExtractBulletPoints(""); len(got) != 0 {
		t.Errorf("expected empty result for empty input, got: %v", got)
	}
	if got := ExtractBulletPoints("  \n  "); len(got) != 0 {
		t.Errorf("expected empty result for whitespace input, got: %v", got)
	}
}

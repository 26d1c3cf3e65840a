// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"encoding/json"
	"testing"
)

func TestValidateCandidate_NilProducesDefaults(t *testing.T) {
	record := ValidateCandidate(nil)

	if record == nil {
		t.Fatal("expected a record, got nil")
	}
	if record.PersonalInfo.FullName != "" || record.PersonalInfo.Email != "" ||
		record.PersonalInfo.Phone != "" || record.PersonalInfo.Location != "" {
		t.Errorf("personal info not defaulted to empty strings: %+v", record.PersonalInfo)
	}
	if record.Summary != "" {
		t.Errorf("summary not empty: %q", record.Summary)
	}
	if record.Experience == nil || len(record.Experience) != 0 {
		t.Errorf("experience should be an empty, non-nil slice: %#v", record.Experience)
	}
	if record.Projects == nil || record.Education == nil || record.PositionOfResponsibility == nil {
		t.Error("entry arrays must be non-nil so they serialize as []")
	}

	// The canonical schema must serialize with all fields present
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{"personalInfo", "summary", "experience", "projects", "education", "positionOfResponsibility"} {
		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if _, ok := decoded[field]; !ok {
			t.Errorf("canonical field %q missing from serialized record", field)
		}
	}
}

func TestValidateCandidate_NullScalarsBecomeEmptyStrings(t *testing.T) {
	candidate := map[string]any{
		"personalInfo": map[string]any{
			"fullName": "Jane Doe",
			"email":    nil,
			"phone":    "555-0101",
		},
		"experience": []any{
			map[string]any{
				"position": "Engineer",
				"company":  nil,
				"dates":    nil,
			},
		},
	}

	record := ValidateCandidate(candidate)

	if record.PersonalInfo.FullName != "Jane Doe" {
		t.Errorf("fullName lost: %q", record.PersonalInfo.FullName)
	}
	if record.PersonalInfo.Email != "" {
		t.Errorf("null email should become empty string, got %q", record.PersonalInfo.Email)
	}
	if len(record.Experience) != 1 {
		t.Fatalf("expected 1 experience entry, got %d", len(record.Experience))
	}
	if record.Experience[0].Company != "" || record.Experience[0].Dates != "" {
		t.Errorf("null entry scalars should become empty strings: %+v", record.Experience[0])
	}
}

func TestValidateCandidate_DiscardsMalformedEntries(t *testing.T) {
	candidate := map[string]any{
		"personalInfo": map[string]any{"fullName": "Jane Doe"},
		"projects": []any{
			nil,
			"not an object",
			42.0,
			map[string]any{"title": "Real project", "description": "Built the core engine from scratch"},
		},
	}

	record := ValidateCandidate(candidate)

	if len(record.Projects) != 1 {
		t.Fatalf("expected only the well-formed project to survive, got %d", len(record.Projects))
	}
	if record.Projects[0].Title != "Real project" {
		t.Errorf("unexpected project: %+v", record.Projects[0])
	}
}

func TestValidateCandidate_DescriptionConvertedToBullets(t *testing.T) {
	candidate := map[string]any{
		"experience": []any{
			map[string]any{
				"position":    "Backend Engineer",
				"company":     "Acme",
				"description": "• Built the payments API\n• Cut p99 latency in half",
			},
		},
	}

	record := ValidateCandidate(candidate)

	entry := record.Experience[0]
	if entry.Description != "" {
		t.Errorf("description should be cleared after conversion, got %q", entry.Description)
	}
	if len(entry.BulletPoints) != 2 {
		t.Fatalf("expected 2 bullet points, got %v", entry.BulletPoints)
	}
	if entry.BulletPoints[0] != "Built the payments API" {
		t.Errorf("unexpected first bullet: %q", entry.BulletPoints[0])
	}
}

func TestValidateCandidate_DetailsFieldAlsoConverted(t *testing.T) {
	candidate := map[string]any{
		"education": []any{
			map[string]any{
				"degree":      "B.Tech",
				"institution": "State University",
				"details":     "Graduated with honors in the accelerated program",
			},
		},
	}

	record := ValidateCandidate(candidate)

	entry := record.Education[0]
	if entry.Details != "" {
		t.Errorf("details should be cleared, got %q", entry.Details)
	}
	if len(entry.BulletPoints) == 0 {
		t.Error("details text should have become bullet points")
	}
}

func TestValidateCandidate_BulletInvariantsApplied(t *testing.T) {
	candidate := map[string]any{
		"experience": []any{
			map[string]any{
				"position": "Engineer",
				"bulletPoints": []any{
					"- Shipped the ingestion service",
					"Shipped the ingestion service",
					"ok", // too short, must be dropped
					"   Ran capacity planning   ",
				},
			},
		},
	}

	record := ValidateCandidate(candidate)

	bullets := record.Experience[0].BulletPoints
	for _, b := range bullets {
		if len(b) <= 3 {
			t.Errorf("short bullet survived: %q", b)
		}
		if b != "Shipped the ingestion service" && b != "Ran capacity planning" {
			t.Errorf("unexpected bullet: %q", b)
		}
	}
	// Marker stripped from the first item makes it a duplicate of the second
	count := 0
	for _, b := range bullets {
		if b == "Shipped the ingestion service" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected marker-stripped duplicate to be removed, found %d copies", count)
	}
}

func TestValidateCandidate_SkillsAndInterests(t *testing.T) {
	candidate := map[string]any{
		"skills":    map[string]any{"languages": "Go, Python", "junk": nil},
		"interests": "distance running",
	}

	record := ValidateCandidate(candidate)

	if record.Skills["languages"] != "Go, Python" {
		t.Errorf("skills not copied: %v", record.Skills)
	}
	if _, ok := record.Skills["junk"]; ok {
		t.Error("null skill value should have been dropped")
	}
	if record.Interests != "distance running" {
		t.Errorf("interests not copied: %q", record.Interests)
	}
}

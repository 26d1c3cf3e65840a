// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import (
	"strings"
)

// ValidateCandidate coerces a decoded model response of unknown shape into
// the canonical ProfileRecord. Malformed pieces are discarded, missing
// scalars become empty strings, and every entry's free-text description is
// converted into bullet points. It never fails: a nil candidate yields the
// default-shaped empty record.
func ValidateCandidate(candidate map[string]any) *ProfileRecord {
	record := NewProfileRecord()
	if candidate == nil {
		return record
	}

	if pi, ok := candidate["personalInfo"].(map[string]any); ok {
		record.PersonalInfo.FullName = stringField(pi, "fullName", "name")
		record.PersonalInfo.Email = stringField(pi, "email")
		record.PersonalInfo.Phone = stringField(pi, "phone")
		record.PersonalInfo.Location = stringField(pi, "location", "address")
		record.PersonalInfo.LinkedIn = stringField(pi, "linkedin")
		record.PersonalInfo.GitHub = stringField(pi, "github")
	}

	record.Summary = stringField(candidate, "summary")
	record.Interests = stringField(candidate, "interests")

	if skills, ok := candidate["skills"].(map[string]any); ok {
		for key, value := range skills {
			if s := asString(value); s != "" {
				record.Skills[key] = s
			}
		}
	}

	for _, raw := range objectList(candidate, "experience") {
		entry := ExperienceEntry{
			Position:     stringField(raw, "position", "title"),
			Company:      stringField(raw, "company"),
			Location:     stringField(raw, "location"),
			Dates:        stringField(raw, "dates", "duration"),
			BulletPoints: stringList(raw, "bulletPoints"),
		}
		entry.BulletPoints = finishBullets(entry.BulletPoints, stringField(raw, "description", "details"))
		record.Experience = append(record.Experience, entry)
	}

	for _, raw := range objectList(candidate, "projects") {
		entry := ProjectEntry{
			Title:        stringField(raw, "title", "name"),
			Organization: stringField(raw, "organization"),
			Duration:     stringField(raw, "duration", "dates"),
			Technologies: stringField(raw, "technologies"),
			BulletPoints: stringList(raw, "bulletPoints"),
		}
		entry.BulletPoints = finishBullets(entry.BulletPoints, stringField(raw, "description", "details"))
		record.Projects = append(record.Projects, entry)
	}

	for _, raw := range objectList(candidate, "education") {
		entry := EducationEntry{
			Degree:       stringField(raw, "degree"),
			Field:        stringField(raw, "field"),
			Institution:  stringField(raw, "institution", "school"),
			Duration:     stringField(raw, "duration", "dates"),
			Grade:        stringField(raw, "grade", "gpa"),
			BulletPoints: stringList(raw, "bulletPoints"),
		}
		entry.BulletPoints = finishBullets(entry.BulletPoints, stringField(raw, "description", "details"))
		record.Education = append(record.Education, entry)
	}

	for _, raw := range objectList(candidate, "positionOfResponsibility") {
		entry := PositionEntry{
			Position:     stringField(raw, "position", "title"),
			Organization: stringField(raw, "organization"),
			Institution:  stringField(raw, "institution"),
			Dates:        stringField(raw, "dates", "duration"),
			BulletPoints: stringList(raw, "bulletPoints"),
		}
		entry.BulletPoints = finishBullets(entry.BulletPoints, stringField(raw, "description", "details"))
		record.PositionOfResponsibility = append(record.PositionOfResponsibility, entry)
	}

	return record
}

// finishBullets converts leftover free text into bullet points and applies
// the bullet invariants to the combined list. A record is never final
// while an entry still carries prose outside bulletPoints, so the source
// description is consumed here and not kept on the entry.
func finishBullets(bullets []string, description string) []string {
	if strings.TrimSpace(description) != "" {
		bullets = append(bullets, ExtractBulletPoints(description)...)
	}
	return postProcessBullets(bullets)
}

// objectList returns the elements of candidate[key] that are actual
// objects, dropping nulls and scalar junk the model sometimes emits
func objectList(candidate map[string]any, key string) []map[string]any {
	list, ok := candidate[key].([]any)
	if !ok {
		return nil
	}
	var objects []map[string]any
	for _, element := range list {
		if obj, ok := element.(map[string]any); ok && obj != nil {
			objects = append(objects, obj)
		}
	}
	return objects
}

// stringField returns the first present key coerced to a string.
// Aliases cover the field-name drift seen across model responses.
func stringField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := obj[key]; ok {
			if s := asString(value); s != "" {
				return s
			}
		}
	}
	return ""
}

func asString(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

// stringList coerces obj[key] into a []string, skipping non-string elements
func stringList(obj map[string]any, key string) []string {
	list, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	var result []string
	for _, element := range list {
		if s := asString(element); s != "" {
			result = append(result, s)
		}
	}
	return result
}

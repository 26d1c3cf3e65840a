// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

// MergePages combines per-page records from the page-by-page flow into one
// record. The precedence rules are asymmetric on purpose, matching the
// observed behavior of the system this replaces:
//
//   - personal info and summary: FIRST non-empty page wins
//   - skills map: merged per key, LAST page wins on collision
//   - interests: LAST non-empty page wins
//   - entry arrays: concatenated in page order, no cross-page dedup
func MergePages(pages []*ProfileRecord) *ProfileRecord {
	if len(pages) == 1 {
		return pages[0]
	}

	merged := NewProfileRecord()
	for _, page := range pages {
		if page == nil {
			continue
		}

		mergeFirstWins(&merged.PersonalInfo.FullName, page.PersonalInfo.FullName)
		mergeFirstWins(&merged.PersonalInfo.Email, page.PersonalInfo.Email)
		mergeFirstWins(&merged.PersonalInfo.Phone, page.PersonalInfo.Phone)
		mergeFirstWins(&merged.PersonalInfo.Location, page.PersonalInfo.Location)
		mergeFirstWins(&merged.PersonalInfo.LinkedIn, page.PersonalInfo.LinkedIn)
		mergeFirstWins(&merged.PersonalInfo.GitHub, page.PersonalInfo.GitHub)
		mergeFirstWins(&merged.Summary, page.Summary)

		merged.Experience = append(merged.Experience, page.Experience...)
		merged.Projects = append(merged.Projects, page.Projects...)
		merged.Education = append(merged.Education, page.Education...)
		merged.PositionOfResponsibility = append(merged.PositionOfResponsibility, page.PositionOfResponsibility...)

		// Later pages overwrite earlier ones here - the opposite of the
		// personal-info rule above
		for key, value := range page.Skills {
			merged.Skills[key] = value
		}
		if page.Interests != "" {
			merged.Interests = page.Interests
		}
	}

	return merged
}

func mergeFirstWins(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

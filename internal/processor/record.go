// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

// PersonalInfo holds the contact block of a profile.
// Fields default to empty string, never null, in the output.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry is one job held by the candidate
type ExperienceEntry struct {
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Dates        string   `json:"dates"`
	Description  string   `json:"description,omitempty"`
	BulletPoints []string `json:"bulletPoints"`
}

// ProjectEntry is one project (personal, academic, or professional)
type ProjectEntry struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Duration     string   `json:"duration"`
	Technologies string   `json:"technologies"`
	Description  string   `json:"description,omitempty"`
	BulletPoints []string `json:"bulletPoints"`
}

// EducationEntry is one degree or certification
type EducationEntry struct {
	Degree       string   `json:"degree"`
	Field        string   `json:"field"`
	Institution  string   `json:"institution"`
	Duration     string   `json:"duration"`
	Grade        string   `json:"grade"`
	Details      string   `json:"details,omitempty"`
	BulletPoints []string `json:"bulletPoints"`
}

// PositionEntry is one position of responsibility (club lead, volunteer role, etc.)
type PositionEntry struct {
	Position     string   `json:"position"`
	Organization string   `json:"organization"`
	Institution  string   `json:"institution"`
	Dates        string   `json:"dates"`
	Description  string   `json:"description,omitempty"`
	BulletPoints []string `json:"bulletPoints"`
}

// ProfileRecord is the canonical structured output of the pipeline.
// One record is built per parse request; nothing is shared between requests.
type ProfileRecord struct {
	PersonalInfo             PersonalInfo      `json:"personalInfo"`
	Summary                  string            `json:"summary"`
	Experience               []ExperienceEntry `json:"experience"`
	Projects                 []ProjectEntry    `json:"projects"`
	Education                []EducationEntry  `json:"education"`
	PositionOfResponsibility []PositionEntry   `json:"positionOfResponsibility"`
	Skills                   map[string]string `json:"skills"`
	Interests                string            `json:"interests"`
}

// NewProfileRecord returns a record in the canonical default shape:
// all arrays empty (not nil, so they serialize as []), all strings empty.
func NewProfileRecord() *ProfileRecord {
	return &ProfileRecord{
		Experience:               []ExperienceEntry{},
		Projects:                 []ProjectEntry{},
		Education:                []EducationEntry{},
		PositionOfResponsibility: []PositionEntry{},
		Skills:                   map[string]string{},
	}
}

// IsMeaningful reports whether the record passes the acceptance gate:
// at least one contact field (name, email, or phone) AND at least one
// content section (any entry array non-empty, or a summary).
func (r *ProfileRecord) IsMeaningful() bool {
	if r == nil {
		return false
	}
	hasContact := r.PersonalInfo.FullName != "" ||
		r.PersonalInfo.Email != "" ||
		r.PersonalInfo.Phone != ""
	if !hasContact {
		return false
	}
	return len(r.Experience) > 0 ||
		len(r.Projects) > 0 ||
		len(r.Education) > 0 ||
		len(r.PositionOfResponsibility) > 0 ||
		r.Summary != ""
}

// EntryCount returns the total number of entries across all four sections
func (r *ProfileRecord) EntryCount() int {
	if r == nil {
		return 0
	}
	return len(r.Experience) + len(r.Projects) + len(r.Education) + len(r.PositionOfResponsibility)
}

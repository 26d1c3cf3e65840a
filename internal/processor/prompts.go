// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package processor

import "fmt"

// responseSchema is the JSON shape we ask the model to fill in. Keeping it
// in one place means the prompt and the validator cannot drift apart.
const responseSchema = `{
  "personalInfo": {"fullName": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": ""},
  "summary": "",
  "experience": [{"position": "", "company": "", "location": "", "dates": "", "bulletPoints": [""]}],
  "projects": [{"title": "", "organization": "", "duration": "", "technologies": "", "bulletPoints": [""]}],
  "education": [{"degree": "", "field": "", "institution": "", "duration": "", "grade": "", "bulletPoints": [""]}],
  "positionOfResponsibility": [{"position": "", "organization": "", "institution": "", "dates": "", "bulletPoints": [""]}],
  "skills": {"languages": "", "frameworks": "", "tools": ""},
  "interests": ""
}`

// buildStructuringPrompt builds the prompt for a given attempt number.
// Instructions escalate: the first attempt demands the strict schema, later
// attempts relax toward "extract anything you can find".
func buildStructuringPrompt(text string, attempt int) string {
	var instructions string
	switch attempt {
	case 1:
		instructions = "Extract the resume information from the text below into JSON matching the schema EXACTLY. " +
			"Fix obvious extraction artifacts (merged words, broken hyphenation) while extracting. " +
			"Use empty strings for missing fields and empty arrays for missing sections. " +
			"Respond with ONLY the JSON object, no markdown fences, no commentary."
	case 2:
		instructions = "The text below is a resume with messy formatting. Extract whatever structured information " +
			"you can into JSON matching the schema. Partial information is fine - fill what you find " +
			"and leave the rest as empty strings or empty arrays. Respond with ONLY the JSON object."
	default:
		instructions = "Extract ANY information from the text below into the JSON schema, even if incomplete " +
			"or uncertain. A name, an email, a single job - anything is better than nothing. " +
			"Respond with ONLY the JSON object."
	}

	return fmt.Sprintf("%s\n\nSchema:\n%s\n\nResume text:\n%s", instructions, responseSchema, text)
}

// buildPagePrompt is the variant sent alongside a page image in the
// page-by-page vision flow
func buildPagePrompt(pageNum, totalPages int) string {
	return fmt.Sprintf("This image is page %d of %d of a resume. Extract the resume information visible "+
		"on this page into JSON matching the schema below. Only include what is actually on this page; "+
		"use empty strings and empty arrays for everything else. Respond with ONLY the JSON object.\n\nSchema:\n%s",
		pageNum, totalPages, responseSchema)
}

package services

import (
	"fmt"
	"unicode/utf8"
)

// Hard input caps. They protect cost and latency and are not configurable.
const (
	maxResumeChars         = 10000
	maxJobDescriptionChars = 5000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchPrompt embeds both texts into the fixed instruction template,
// truncating each to its cap first. Identical inputs always produce an
// identical prompt.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert recruiter and ATS (Applicant Tracking System) specialist evaluating how well a résumé matches a job description.

JOB DESCRIPTION:
%s

RESUME:
%s

Your task:
1. Score the overall match between the résumé and the job description (0-100).
2. Score ATS compatibility of the résumé (0-100).
3. Break the match down into skills, experience, education, and keywords sub-scores (0-100 each).
4. List keywords from the job description that are missing from the résumé.
5. Give per-section feedback for skills, experience, and education.
6. List the candidate's strengths and weaknesses relative to this role.
7. List the key changes to make, ordered by impact.
8. Write a short free-text summary of the overall fit.

Base all reasoning only on the provided text. Do not assume experience that is not explicitly mentioned. Return only the structured JSON object, nothing else.`,
		truncate(jobDescription, maxJobDescriptionChars),
		truncate(resumeText, maxResumeChars),
	)
}

// truncate keeps at most max bytes of s, backing off to the previous rune
// boundary so a multi-byte character is never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

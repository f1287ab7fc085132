package models

// AnalysisReport is the structured payload the model returns for one
// résumé / job-description pair. Numeric fields are percentages (0-100);
// bounds are a downstream concern, not enforced here.
type AnalysisReport struct {
	MatchPercentage float64         `json:"matchPercentage"`
	ScoreBreakdown  ScoreBreakdown  `json:"scoreBreakdown"`
	ATSScore        float64         `json:"atsScore"`
	MissingKeywords []string        `json:"missingKeywords"`
	SectionFeedback SectionFeedback `json:"sectionFeedback"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	KeyChanges      []string        `json:"keyChanges"`
	Summary         string          `json:"summary"`
}

type ScoreBreakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Keywords   float64 `json:"keywords"`
}

type SectionFeedback struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// Normalize replaces nil slices with empty ones so consumers always see
// arrays, never null. Fields the model omitted keep their zero values.
func (r *AnalysisReport) Normalize() {
	if r.MissingKeywords == nil {
		r.MissingKeywords = []string{}
	}
	if r.SectionFeedback.Skills == nil {
		r.SectionFeedback.Skills = []string{}
	}
	if r.SectionFeedback.Experience == nil {
		r.SectionFeedback.Experience = []string{}
	}
	if r.SectionFeedback.Education == nil {
		r.SectionFeedback.Education = []string{}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Weaknesses == nil {
		r.Weaknesses = []string{}
	}
	if r.KeyChanges == nil {
		r.KeyChanges = []string{}
	}
}

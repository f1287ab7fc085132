package services

import "google.golang.org/genai"

// analysisResponseSchema declares the exact shape the model must return.
// Every top-level field is requested as required; tolerance for fields the
// model omits anyway lives on the consuming side.
func analysisResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matchPercentage": {Type: genai.TypeNumber},
			"scoreBreakdown": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skills":     {Type: genai.TypeNumber},
					"experience": {Type: genai.TypeNumber},
					"education":  {Type: genai.TypeNumber},
					"keywords":   {Type: genai.TypeNumber},
				},
				Required: []string{"skills", "experience", "education", "keywords"},
			},
			"atsScore":        {Type: genai.TypeNumber},
			"missingKeywords": stringArraySchema(),
			"sectionFeedback": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skills":     stringArraySchema(),
					"experience": stringArraySchema(),
					"education":  stringArraySchema(),
				},
				Required: []string{"skills", "experience", "education"},
			},
			"strengths":  stringArraySchema(),
			"weaknesses": stringArraySchema(),
			"keyChanges": stringArraySchema(),
			"summary":    {Type: genai.TypeString},
		},
		Required: []string{
			"matchPercentage",
			"scoreBreakdown",
			"atsScore",
			"missingKeywords",
			"sectionFeedback",
			"strengths",
			"weaknesses",
			"keyChanges",
			"summary",
		},
	}
}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

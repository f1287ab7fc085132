package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"resume-matcher/internal/models"
)

// RetryPolicy bounds the transport retry loop: MaxAttempts total attempts,
// waiting BaseDelay * Multiplier^i after attempt i.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Multiplier:  2,
	}
}

type AnalyzerService interface {
	// Analyze runs the full pipeline for one résumé / job-description pair.
	// Empty inputs are a no-op: it returns (nil, nil) without calling the
	// model. Nothing is cached; every call re-executes everything.
	Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisReport, error)
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	retry         RetryPolicy
}

func NewAnalyzerService(gemini GeminiService, retry RetryPolicy) AnalyzerService {
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryPolicy()
	}
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		retry:         retry,
	}
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisReport, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		// Nothing to match against: a no-op by contract, not an error.
		return nil, nil
	}

	// A missing credential is fatal before any network activity, so it must
	// not burn retry attempts.
	if err := a.gemini.CheckCredential(); err != nil {
		return nil, err
	}

	reqID := uuid.New().String()
	prompt := a.promptBuilder.BuildMatchPrompt(resumeText, jobDescription)
	log.Printf("📝 [%s] analysis prompt built: %d characters", reqID, len(prompt))

	resp, err := a.generateWithRetry(ctx, reqID, prompt)
	if err != nil {
		log.Printf("❌ [%s] analysis failed: %v", reqID, err)
		return nil, err
	}

	report, err := extractReport(resp)
	if err != nil {
		log.Printf("❌ [%s] failed to extract analysis report: %v", reqID, err)
		return nil, err
	}

	log.Printf("✅ [%s] analysis completed: match %.0f%%", reqID, report.MatchPercentage)
	return report, nil
}

// generateWithRetry attempts the call up to MaxAttempts times. The final
// attempt's error is returned unmodified; there is no wait after it.
func (a *analyzerService) generateWithRetry(ctx context.Context, reqID, prompt string) (*genai.GenerateContentResponse, error) {
	var lastErr error
	delay := a.retry.BaseDelay

	for attempt := 0; attempt < a.retry.MaxAttempts; attempt++ {
		resp, err := a.gemini.GenerateContent(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == a.retry.MaxAttempts-1 {
			break
		}

		log.Printf("⚠️ [%s] attempt %d failed: %v. Retrying in %s", reqID, attempt+1, err, delay)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= time.Duration(a.retry.Multiplier)
	}

	return nil, lastErr
}

// extractReport pulls the JSON payload out of the provider envelope and
// validates the one hard integrity gate, matchPercentage. All other
// declared fields default leniently when the model omits them.
func extractReport(resp *genai.GenerateContentResponse) (*models.AnalysisReport, error) {
	blob := firstTextPart(resp)
	if blob == "" {
		return nil, fmt.Errorf("%w: no text content in candidates", ErrEmptyResponse)
	}

	cleaned := cleanJSON(blob)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		// A bare JSON null decodes into a nil map without an error.
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedResponse)
	}

	rawMatch, ok := fields["matchPercentage"]
	if !ok {
		return nil, fmt.Errorf("%w: matchPercentage missing", ErrSchemaViolation)
	}
	// Decode through a pointer so a JSON null is caught instead of
	// silently leaving the zero value behind.
	var matchPercentage *float64
	if err := json.Unmarshal(rawMatch, &matchPercentage); err != nil || matchPercentage == nil {
		return nil, fmt.Errorf("%w: matchPercentage is not numeric", ErrSchemaViolation)
	}

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	report.Normalize()
	return &report, nil
}

// firstTextPart walks the envelope: candidates wrap content parts, and the
// first part carrying text holds the JSON blob.
func firstTextPart(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// cleanJSON strips markdown code fences the model sometimes wraps around
// the payload despite the JSON response MIME type.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

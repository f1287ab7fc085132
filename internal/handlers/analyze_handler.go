package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"resume-matcher/internal/models"
	"resume-matcher/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	busy     atomic.Bool
}

func NewAnalyzeHandler(analyzer services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
	}
}

// HandleAnalyze handles POST /analyze. One analysis runs at a time;
// duplicate submissions are rejected, not queued.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text and job_description are required",
		})
	}

	if !h.busy.CompareAndSwap(false, true) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "an analysis is already in progress",
		})
	}
	defer h.busy.Store(false)

	report, err := h.analyzer.Analyze(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		return c.Status(analyzeStatus(err)).JSON(fiber.Map{
			"error": fmt.Sprintf("Analysis failed: %v", err),
		})
	}
	if report == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nothing to analyze",
		})
	}

	return c.JSON(report)
}

func analyzeStatus(err error) int {
	if errors.Is(err, services.ErrMissingCredential) {
		return fiber.StatusInternalServerError
	}
	// Transport and envelope failures both point at the upstream provider.
	return fiber.StatusBadGateway
}

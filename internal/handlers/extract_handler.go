package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-matcher/internal/models"
	"resume-matcher/internal/services"
)

type ExtractHandler struct {
	extractor services.ExtractorService
}

func NewExtractHandler(extractor services.ExtractorService) *ExtractHandler {
	return &ExtractHandler{
		extractor: extractor,
	}
}

// HandleExtract handles POST /extract: one multipart file under "resume",
// responding with the extracted text or a typed failure reason.
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return extractError(c, fiber.StatusBadRequest, errors.New("no resume file in request"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.extractor.ValidateUpload(fileHeader.Size, fileHeader.Filename, contentType); err != nil {
		return extractError(c, fiber.StatusBadRequest, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return extractError(c, fiber.StatusUnprocessableEntity, fmt.Errorf("%w: %v", services.ErrRead, err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return extractError(c, fiber.StatusUnprocessableEntity, fmt.Errorf("%w: %v", services.ErrRead, err))
	}

	text, err := h.extractor.Extract(models.UploadedDocument{
		Data:        data,
		ContentType: contentType,
		Filename:    fileHeader.Filename,
	})
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, services.ErrUnsupportedFormat) {
			status = fiber.StatusBadRequest
		}
		return extractError(c, status, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ExtractResponse{
		ID:       uuid.New().String(),
		Filename: fileHeader.Filename,
		Text:     text,
	})
}

// extractError always sends empty text alongside the error so the client
// clears any previously displayed extraction.
func extractError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"text":  "",
	})
}

package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resume-matcher/internal/models"
)

const (
	pdfMIME  = "application/pdf"
	textMIME = "text/plain"
)

type ExtractorService interface {
	// ValidateUpload enforces the upload surface rules before any bytes are
	// read: the size cap always, and PDF-only when strict mode is on.
	ValidateUpload(size int64, filename, contentType string) error

	// Extract converts an uploaded document into plain text. On failure it
	// always returns an empty string so callers can clear stale text.
	Extract(doc models.UploadedDocument) (string, error)
}

type extractorService struct {
	maxFileSize int64
	strictPDF   bool
}

func NewExtractorService(maxFileSize int64, strictPDF bool) ExtractorService {
	return &extractorService{
		maxFileSize: maxFileSize,
		strictPDF:   strictPDF,
	}
}

// ValidateUpload implements ExtractorService.
func (e *extractorService) ValidateUpload(size int64, filename, contentType string) error {
	if size > e.maxFileSize {
		return fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, e.maxFileSize)
	}
	if e.strictPDF && !isPDF(filename, contentType) {
		return fmt.Errorf("%w: only PDF uploads are accepted", ErrInvalidType)
	}
	return nil
}

// Extract implements ExtractorService. Classification precedence: PDF by
// MIME type or .pdf suffix, plain text by MIME type or .txt suffix, then
// doc/docx rejected explicitly, then everything else rejected by name.
func (e *extractorService) Extract(doc models.UploadedDocument) (string, error) {
	name := strings.ToLower(doc.Filename)

	switch {
	case isPDF(doc.Filename, doc.ContentType):
		return extractPDFText(doc.Data)
	case mimeIs(doc.ContentType, textMIME) || strings.HasSuffix(name, ".txt"):
		return extractPlainText(doc.Data)
	case strings.HasSuffix(name, ".doc") || strings.HasSuffix(name, ".docx"):
		return "", fmt.Errorf("%w: doc/docx not auto-parsed", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: unsupported file type: %s", ErrUnsupportedFormat, doc.Filename)
	}
}

func isPDF(filename, contentType string) bool {
	return mimeIs(contentType, pdfMIME) || strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// mimeIs matches a declared content type, ignoring parameters such as
// "; charset=utf-8".
func mimeIs(contentType, want string) bool {
	base := contentType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	return strings.TrimSpace(strings.ToLower(base)) == want
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf library panics rather than erroring on some malformed
	// structures; recover those into a parse failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = pdfParseError()
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pdfParseError()
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		raw, err := page.GetPlainText(nil)
		if err != nil {
			return "", pdfParseError()
		}
		pages = append(pages, pageText(raw))
	}

	return joinPages(pages), nil
}

// pageText normalizes one page's raw text to its tokens joined by single
// spaces.
func pageText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func pdfParseError() error {
	return fmt.Errorf("%w: try another file or paste the text manually", ErrParse)
}

// joinPages concatenates page texts in order, one blank line between pages,
// whitespace-trimmed.
func joinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n\n"))
}

// extractPlainText decodes content as UTF-8 text, replacing invalid
// sequences rather than failing on them.
func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		data = []byte(strings.ToValidUTF8(string(data), "�"))
	}
	return strings.TrimSpace(string(data)), nil
}

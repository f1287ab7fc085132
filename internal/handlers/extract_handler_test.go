package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/services"
)

func newExtractApp(extractor services.ExtractorService) *fiber.App {
	app := fiber.New()
	app.Post("/extract", NewExtractHandler(extractor).HandleExtract)
	return app
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleExtract_PlainTextSuccess(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(5*1024*1024, false))

	resp, err := app.Test(multipartUpload(t, "resume.txt", "text/plain", []byte("  years of Go experience  ")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "years of Go experience", body["text"])
	assert.Equal(t, "resume.txt", body["filename"])
	assert.NotEmpty(t, body["id"])
}

func TestHandleExtract_DocxRejectedWithClearedText(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(5*1024*1024, false))

	resp, err := app.Test(multipartUpload(t, "resume.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		[]byte("binary doc")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "doc/docx not auto-parsed")
	text, present := body["text"]
	assert.True(t, present, "error responses must carry cleared text")
	assert.Equal(t, "", text)
}

func TestHandleExtract_CorruptPDFIsUnprocessable(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(5*1024*1024, false))

	resp, err := app.Test(multipartUpload(t, "resume.pdf", "application/pdf", []byte("not really a pdf")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "paste the text manually")
	assert.Equal(t, "", body["text"])
}

func TestHandleExtract_FileTooLarge(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(16, false))

	resp, err := app.Test(multipartUpload(t, "resume.txt", "text/plain", []byte(strings.Repeat("x", 64))))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "file too large")
}

func TestHandleExtract_StrictModePDFOnly(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(5*1024*1024, true))

	resp, err := app.Test(multipartUpload(t, "resume.txt", "text/plain", []byte("plain text resume")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "only PDF uploads are accepted")
	assert.Equal(t, "", body["text"])
}

func TestHandleExtract_MissingFile(t *testing.T) {
	app := newExtractApp(services.NewExtractorService(5*1024*1024, false))

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package services

import "errors"

// Extraction failures. Matched with errors.Is; wrapped messages carry the
// user-facing reason.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("could not read document")
	ErrRead              = errors.New("could not decode file content")
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidType       = errors.New("invalid file type")
)

// Analysis failures.
var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyResponse     = errors.New("empty model response")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrSchemaViolation   = errors.New("response missing match percentage")
)

package models

// UploadedDocument is the transient value handed to text extraction. It
// lives only for the duration of one extraction call and is never stored.
type UploadedDocument struct {
	Data        []byte
	ContentType string
	Filename    string
}

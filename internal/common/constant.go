// Package common contains constants shared by the client packages.
package common

const (
	// RequestIDHeaderName carries a per-request correlation ID.
	RequestIDHeaderName = "X-Request-ID"

	// ContentTypeJSON is set on JSON request bodies.
	ContentTypeJSON = "application/json"

	// UserAgent identifies the CLI to the backend.
	UserAgent = "cockpdf-cli"

	// UploadFieldName is the multipart field the upload endpoints read.
	UploadFieldName = "file"

	// MaxImageSize is the largest image accepted for upload or OCR (10 MiB).
	MaxImageSize = 10 << 20
)

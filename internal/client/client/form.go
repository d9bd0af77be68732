package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// FormFile is a single file part of a multipart form.
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

// Form is a multipart/form-data request body. Passing a *Form as
// RequestOptions.Body sends it as-is; the client never sets a JSON
// content type for it.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// NewFileForm builds the single-file form the upload endpoints expect.
func NewFileForm(field, name, contentType string, content io.Reader) *Form {
	return &Form{Files: []FormFile{{Field: field, Name: name, ContentType: contentType, Content: content}}}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode writes the form and returns the body together with the content type
// carrying the multipart boundary.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range f.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create form part %s: %w", file.Field, err)
		}
		if file.Content != nil {
			if _, err := io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("copy form part %s: %w", file.Field, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

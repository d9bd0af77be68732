package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/cockpdf/internal/common"
)

var (
	ErrNotAnImage    = errors.New("file is not an image")
	ErrImageTooLarge = fmt.Errorf("image exceeds %d MiB", common.MaxImageSize>>20)
	ErrEmptyImage    = errors.New("image file is empty")
)

// Image is an image record stored by the backend.
type Image struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	URL    string `json:"url"`
}

// ImageFile is a local image selected for upload or OCR.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Reader returns a fresh reader over the image bytes.
func (f *ImageFile) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// BaseName is the file name without its extension.
func (f *ImageFile) BaseName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// NewImageFile validates data and sniffs its content type. Only content
// starting with image/ is accepted, up to common.MaxImageSize bytes.
func NewImageFile(name string, data []byte) (*ImageFile, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > common.MaxImageSize {
		return nil, ErrImageTooLarge
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, ct)
	}
	return &ImageFile{Name: filepath.Base(name), ContentType: ct, Data: data}, nil
}

// LoadImageFile reads path and validates it with NewImageFile. Files larger
// than the limit are rejected without being read fully.
func LoadImageFile(path string) (*ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, common.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return NewImageFile(path, data)
}

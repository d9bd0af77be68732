package models

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/cockpdf/internal/common"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestNewImageFile(t *testing.T) {
	img, err := NewImageFile("/tmp/scans/receipt.png", pngHeader)
	require.NoError(t, err)
	require.Equal(t, "receipt.png", img.Name)
	require.Equal(t, "receipt", img.BaseName())
	require.Equal(t, "image/png", img.ContentType)

	_, err = NewImageFile("notes.txt", []byte("plain text, not an image"))
	require.ErrorIs(t, err, ErrNotAnImage)

	_, err = NewImageFile("empty.png", nil)
	require.ErrorIs(t, err, ErrEmptyImage)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, common.MaxImageSize)...)
	_, err = NewImageFile("big.png", big)
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	img, err := LoadImageFile(path)
	require.NoError(t, err)
	require.Equal(t, "scan.png", img.Name)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(img.Reader())
	require.NoError(t, err)
	require.Equal(t, pngHeader, buf.Bytes())

	_, err = LoadImageFile(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

package cli

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"github.com/dmitrijs2005/cockpdf/internal/filex"
)

const defaultDownloadName = "image"

func loadImage(p string) (*models.ImageFile, error) {
	img, err := models.LoadImageFile(p)
	if err != nil {
		return nil, inputError{err}
	}
	return img, nil
}

// Upload sends a local image to the backend.
func (a *App) Upload(ctx context.Context, p string) error {
	img, err := loadImage(p)
	if err != nil {
		return err
	}

	rec, err := a.api.UploadImage(ctx, img)
	if err != nil {
		return a.noteAuthFailure(err)
	}

	if rec != nil && rec.URL != "" {
		printlnFn("Uploaded:", rec.URL)
	} else {
		printlnFn("Uploaded", img.Name)
	}
	return nil
}

// Images lists the user's uploaded images.
func (a *App) Images(ctx context.Context) error {
	list, err := a.api.GetAllUserImages(ctx)
	if err != nil {
		return a.noteAuthFailure(err)
	}

	if len(list) == 0 {
		printlnFn("No images")
		return nil
	}
	for _, img := range list {
		printlnFn(fmt.Sprintf("%-36s %s", img.ID, img.URL))
	}
	return nil
}

// Delete removes the image stored at u.
func (a *App) Delete(ctx context.Context, u string) error {
	if _, err := a.api.DeleteImage(ctx, u); err != nil {
		return a.noteAuthFailure(err)
	}
	printlnFn("Deleted", u)
	return nil
}

// OCR converts a local image to a PDF and writes it to the output
// directory as <image name>.pdf, never overwriting an existing file.
func (a *App) OCR(ctx context.Context, p string) error {
	img, err := loadImage(p)
	if err != nil {
		return err
	}

	pdf, err := a.api.OCRToPDF(ctx, img)
	if err != nil {
		return a.noteAuthFailure(err)
	}

	dir, err := filex.EnsureDir(a.config.OutputDir)
	if err != nil {
		return err
	}
	out, err := filex.WriteNew(dir, img.BaseName()+".pdf", pdf)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("PDF saved to %s (%d bytes)", out, len(pdf)))
	return nil
}

// Get downloads the image at u. Without dest it lands in the output
// directory under the URL's file name.
func (a *App) Get(ctx context.Context, u, dest string) error {
	data, err := a.api.DownloadImage(ctx, u)
	if err != nil {
		return a.noteAuthFailure(err)
	}

	dir, name := filepath.Split(dest)
	if dest == "" {
		dir = a.config.OutputDir
	}
	if name == "" {
		name = downloadName(u)
	}
	if dir == "" {
		dir = "."
	}
	if dir, err = filex.EnsureDir(dir); err != nil {
		return err
	}

	out, err := filex.WriteNew(dir, name, data)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Saved %s (%d bytes)", out, len(data)))
	return nil
}

func downloadName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return defaultDownloadName
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultDownloadName
	}
	return name
}

// noteAuthFailure downgrades the prompt to guest when the backend refused
// the session, and returns err unchanged.
func (a *App) noteAuthFailure(err error) error {
	switch client.Classify(err) {
	case client.KindAuthRequired:
		a.setAuth(AuthGuest, "")
	case client.KindTransport:
		if apiErr, _ := client.AsAPIError(err); apiErr.IsAuthFailure() {
			a.setAuth(AuthGuest, "")
		}
	}
	return err
}

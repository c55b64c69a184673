// Package storage keeps uploaded images on disk, in memory or in
// S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/media"
)

// PublicPath is the URL prefix under which Local and Memory objects are served.
const PublicPath = "/uploads/"

func publicURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + PublicPath + name
}

// Local stores uploads as files in a directory.
type Local struct {
	dir string
}

// NewLocal creates a Local store rooted at dir. The directory is created on
// first write.
func NewLocal(dir string) Local {
	return Local{dir: dir}
}

// Dir returns the directory files are written to.
func (l Local) Dir() string { return l.dir }

// Put writes the upload to <dir>/<safe name>.
func (l Local) Put(_ context.Context, baseURL string, upload media.Upload) (media.Image, error) {
	name := media.SafeName(upload.Name)
	if name == "" {
		return media.Image{}, fmt.Errorf("%w: empty file name", domain.ErrValidation)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return media.Image{}, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return media.Image{}, fmt.Errorf("create upload: %w", err)
	}
	n, err := io.Copy(f, upload.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return media.Image{}, fmt.Errorf("write upload: %w", err)
	}

	return media.NewImage(name, publicURL(baseURL, name), upload.ContentType, n), nil
}

// Open returns the stored file. Unknown names are domain.ErrNotFound.
func (l Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	safe := media.SafeName(name)
	if safe == "" || safe != name {
		return nil, fmt.Errorf("%w: upload %q", domain.ErrNotFound, name)
	}
	f, err := os.Open(filepath.Join(l.dir, safe))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: upload %q", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

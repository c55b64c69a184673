package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/media"
)

// sniffLen is how many leading bytes are inspected to detect the MIME type.
const sniffLen = 3072

// Sniff detects the MIME type of r from its first bytes and returns a reader
// that still yields the full content.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// Uploads stores image files.
type Uploads struct {
	store  media.Store
	now    func() time.Time
	logger *slog.Logger
}

// UploadsOption configures Uploads.
type UploadsOption func(*Uploads)

// WithUploadClock overrides the clock used to prefix object names.
func WithUploadClock(now func() time.Time) UploadsOption {
	return func(u *Uploads) { u.now = now }
}

// NewUploads creates a new Uploads service.
func NewUploads(store media.Store, logger *slog.Logger, opts ...UploadsOption) *Uploads {
	u := &Uploads{store: store, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Store checks that body is an image and saves it as
// <unix-millis>-<safe name>. baseURL is the scheme and host the file will be
// served from by stores without a fixed public base.
func (s *Uploads) Store(ctx context.Context, baseURL, filename string, size int64, body io.Reader) (media.Image, error) {
	if body == nil {
		return media.Image{}, fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}
	contentType, full, err := Sniff(body)
	if err != nil {
		return media.Image{}, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return media.Image{}, fmt.Errorf("%w: only image uploads are allowed, got %s", domain.ErrValidation, contentType)
	}

	img, err := s.store.Put(ctx, baseURL, media.Upload{
		Name:        media.ObjectName(s.now(), filename),
		ContentType: contentType,
		Size:        size,
		Body:        full,
	})
	if err != nil {
		return media.Image{}, fmt.Errorf("store upload: %w", err)
	}
	s.logger.InfoContext(ctx, "image uploaded", "name", img.Name(), "content_type", contentType, "size", img.Size())
	return img, nil
}

// Package media describes uploaded images and where they are kept.
package media

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Image is an uploaded file and the public URL it is reachable at.
type Image struct {
	name        string
	url         string
	contentType string
	size        int64
}

// NewImage creates an Image.
func NewImage(name, url, contentType string, size int64) Image {
	return Image{name: name, url: url, contentType: contentType, size: size}
}

// Name returns the stored object name.
func (i Image) Name() string { return i.name }

// URL returns the public URL.
func (i Image) URL() string { return i.url }

// ContentType returns the detected MIME type.
func (i Image) ContentType() string { return i.contentType }

// Size returns the size in bytes.
func (i Image) Size() int64 { return i.size }

// Upload is an image waiting to be stored.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Store persists uploads. baseURL is the scheme and host of the incoming
// request; stores with a fixed public base ignore it.
type Store interface {
	Put(ctx context.Context, baseURL string, upload Upload) (Image, error)
}

// Server is a Store that can also serve its objects back over HTTP.
type Server interface {
	Store
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeChar = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
)

// SafeName replaces whitespace and every character outside [A-Za-z0-9_.-]
// with an underscore.
func SafeName(name string) string {
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	return unsafeChar.ReplaceAllString(name, "_")
}

// ObjectName prefixes the safe form of original with now in Unix millis so
// repeated uploads of the same file do not collide.
func ObjectName(now time.Time, original string) string {
	safe := SafeName(original)
	if safe == "" {
		safe = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), safe)
}

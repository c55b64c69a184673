package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/media"
	"github.com/inkwell-shop/storefront/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrSpacesNotConfigured is returned when required object storage settings
// are missing.
var ErrSpacesNotConfigured = errors.New("object storage is not configured")

// Spaces uploads images to an S3-compatible bucket as public-read objects.
type Spaces struct {
	client     *minio.Client
	bucket     string
	folder     string
	publicBase string
}

// NewSpaces creates a Spaces store. No request is made until the first Put.
func NewSpaces(cfg config.SpacesConfig) (Spaces, error) {
	if !cfg.IsConfigured() {
		return Spaces{}, ErrSpacesNotConfigured
	}

	endpoint, secure, err := splitEndpoint(cfg.Endpoint())
	if err != nil {
		return Spaces{}, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey(), cfg.SecretKey(), ""),
		Secure: secure,
		Region: cfg.Region(),
	})
	if err != nil {
		return Spaces{}, fmt.Errorf("create object storage client: %w", err)
	}

	return Spaces{
		client:     client,
		bucket:     cfg.Bucket(),
		folder:     cfg.Folder(),
		publicBase: cfg.PublicBase(),
	}, nil
}

// splitEndpoint accepts either a URL or a bare host and returns the host
// plus whether TLS should be used. Bare hosts default to TLS.
func splitEndpoint(endpoint string) (string, bool, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parse object storage endpoint: %w", err)
	}
	if parsed.Host == "" {
		return endpoint, true, nil
	}
	return parsed.Host, parsed.Scheme != "http", nil
}

// Key returns the object key for a file name.
func (s Spaces) Key(name string) string {
	return path.Join(s.folder, name)
}

// URL returns the public URL of a key.
func (s Spaces) URL(key string) string {
	return s.publicBase + "/" + key
}

// Put uploads the object under <folder>/<safe name>. The request base URL is
// ignored; objects are addressed through the configured public base.
func (s Spaces) Put(ctx context.Context, _ string, upload media.Upload) (media.Image, error) {
	name := media.SafeName(upload.Name)
	if name == "" {
		return media.Image{}, fmt.Errorf("%w: empty file name", domain.ErrValidation)
	}

	size := upload.Size
	if size <= 0 {
		size = -1
	}

	key := s.Key(name)
	info, err := s.client.PutObject(ctx, s.bucket, key, upload.Body, size, minio.PutObjectOptions{
		ContentType:  upload.ContentType,
		CacheControl: "public, max-age=31536000, immutable",
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		return media.Image{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return media.NewImage(name, s.URL(key), upload.ContentType, info.Size), nil
}

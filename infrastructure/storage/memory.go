package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/inkwell-shop/storefront/domain"
	"github.com/inkwell-shop/storefront/domain/media"
)

// Memory keeps uploads in process memory. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

// Put reads the whole upload into memory.
func (m *Memory) Put(_ context.Context, baseURL string, upload media.Upload) (media.Image, error) {
	name := media.SafeName(upload.Name)
	if name == "" {
		return media.Image{}, fmt.Errorf("%w: empty file name", domain.ErrValidation)
	}
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return media.Image{}, fmt.Errorf("read upload: %w", err)
	}

	m.mu.Lock()
	m.objects[name] = data
	m.mu.Unlock()

	return media.NewImage(name, publicURL(baseURL, name), upload.ContentType, int64(len(data))), nil
}

// Open returns a reader over a stored object.
func (m *Memory) Open(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: upload %q", domain.ErrNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

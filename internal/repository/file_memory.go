package repository

import (
	"context"
	"time"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/patrickmn/go-cache"
)

const currentFileKey = "current"

// FileMemory keeps the most recently ingested file in process memory.
// Save swaps the whole snapshot, so readers never see a partially written file.
type FileMemory struct {
	cache *cache.Cache
}

// NewFileMemory creates the store. A non-positive ttl keeps the file until it is replaced.
func NewFileMemory(ttl time.Duration) *FileMemory {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl
	}

	return &FileMemory{
		cache: cache.New(expiration, cleanup),
	}
}

// Save replaces the stored file. The caller must not modify file afterwards.
func (m *FileMemory) Save(_ context.Context, file *entity.StoredFile) error {
	m.cache.Set(currentFileKey, file, cache.DefaultExpiration)
	return nil
}

// Current returns the stored file or entity.ErrNoFileIngested.
func (m *FileMemory) Current(_ context.Context) (*entity.StoredFile, error) {
	v, ok := m.cache.Get(currentFileKey)
	if !ok {
		return nil, entity.ErrNoFileIngested
	}

	file, ok := v.(*entity.StoredFile)
	if !ok || file == nil {
		return nil, entity.ErrNoFileIngested
	}

	return file, nil
}

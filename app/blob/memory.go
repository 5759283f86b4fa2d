package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

type memoryEntry struct {
	info Info
	data []byte
}

// MemoryStore implements Store backed by process memory. Intended for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	objs map[string]memoryEntry
	rev  int

	// Now supplies timestamps for stored blobs. Tests override it to control
	// last-modified comparisons.
	Now func() time.Time
}

// NewMemory returns an in-memory blob store.
func NewMemory() *MemoryStore {
	return &MemoryStore{objs: make(map[string]memoryEntry), Now: time.Now}
}

func (s *MemoryStore) Driver() Driver { return DriverMemory }

func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, contentType string) (Info, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rev++
	info := Info{
		Key:          key,
		Size:         int64(len(b)),
		ContentType:  contentType,
		ETag:         fmt.Sprintf("rev-%d", s.rev),
		LastModified: s.Now().UTC(),
	}
	s.objs[key] = memoryEntry{info: info, data: b}

	return info, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()

	if !ok {
		return Info{}, nil, fmt.Errorf("blob %s: %w", key, ErrNotFound)
	}

	dataCopy := make([]byte, len(obj.data))
	copy(dataCopy, obj.data)

	return obj.info, io.NopCloser(bytes.NewReader(dataCopy)), nil
}

func (s *MemoryStore) Head(_ context.Context, key string) (Info, error) {
	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()

	if !ok {
		return Info{}, fmt.Errorf("blob %s: %w", key, ErrNotFound)
	}

	return obj.info, nil
}

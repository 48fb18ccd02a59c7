package storage

import (
	"context"
	"sync"
)

// MemoryBackupStorage keeps uploads in memory. Used in tests and for
// dry runs when no bucket is configured.
type MemoryBackupStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryBackupStorage creates a new in-memory backup storage
func NewMemoryBackupStorage() *MemoryBackupStorage {
	return &MemoryBackupStorage{files: make(map[string][]byte)}
}

// Upload stores the file in memory
func (s *MemoryBackupStorage) Upload(_ context.Context, filename string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.files[filename] = stored
	return nil
}

// File returns an uploaded file's contents
func (s *MemoryBackupStorage) File(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[filename]
	return data, ok
}

// Len returns how many files were uploaded
func (s *MemoryBackupStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Ensure MemoryBackupStorage implements BackupStorage
var _ BackupStorage = (*MemoryBackupStorage)(nil)

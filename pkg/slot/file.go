package slot

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileStore keeps the slot in a single file on disk. Writes go through a
// temp file + rename so a crash mid-write never leaves a torn slot.
type fileStore struct {
	path string
}

// NewFile returns a file-backed slot at path. Parent directories are
// created on first write.
func NewFile(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("slot/file: read %s: %w", s.path, err)
	}
	return data, nil
}

func (s *fileStore) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("slot/file: mkdir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("slot/file: write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("slot/file: rename %s: %w", s.path, err)
	}
	return nil
}

func (s *fileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("slot/file: clear %s: %w", s.path, err)
	}
	return nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage persists flat documents on disk under a base directory.
// Writes are whole-file overwrites; concurrent writers race and the last
// one wins.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./settings"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Write replaces the named document with the given bytes.
func (s *LocalStorage) Write(filename string, data []byte) error {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// Read returns the document contents. The boolean reports whether the
// document exists; absence is not an error.
func (s *LocalStorage) Read(filename string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.resolve(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read settings file: %w", err)
	}
	return data, true, nil
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

func (s *LocalStorage) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}

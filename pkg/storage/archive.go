package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archive keeps rendered report files on disk so exports survive beyond
// the request that produced them.
type Archive struct {
	baseDir string
}

// NewArchive ensures the archive directory exists and returns a handle.
func NewArchive(baseDir string) (*Archive, error) {
	if baseDir == "" {
		baseDir = "./reports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report archive directory: %w", err)
	}
	return &Archive{baseDir: baseDir}, nil
}

// Save writes the given bytes under the archive directory.
func (a *Archive) Save(filename string, data []byte) (string, error) {
	path := a.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archived report: %w", err)
	}
	return filename, nil
}

// CleanupOlderThan removes archived reports older than the TTL and
// returns the deleted names.
func (a *Archive) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(a.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(a.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup report archive: %w", err)
	}
	return deleted, nil
}

func (a *Archive) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(a.baseDir, filename)
}

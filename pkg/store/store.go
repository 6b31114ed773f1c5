/*
Package store persists the curation artifact the static front-end reads.
*/
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"api-security-news/pkg/domain"
)

// ErrNoArtifact is returned by Read when no artifact has been written yet
var ErrNoArtifact = errors.New("artifact not found")

// FileStore writes the curation result as indented JSON at a fixed path
type FileStore struct {
	path string
}

// NewFileStore creates a store for the artifact at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the artifact location
func (s *FileStore) Path() string {
	return s.path
}

// Publish replaces the artifact with result, creating the parent directory if needed.
// The file is written to a temporary name first so readers never see a partial document.
func (s *FileStore) Publish(ctx context.Context, result *domain.CurationResult) error {
	if result == nil {
		return fmt.Errorf("nil curation result")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal curation result: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".news-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	log.Printf("FileStore: wrote %d items to %s", result.Count, s.path)
	return nil
}

// Read loads a previously written artifact
func (s *FileStore) Read() (*domain.CurationResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoArtifact
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var result domain.CurationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", s.path, err)
	}
	return &result, nil
}

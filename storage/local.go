package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalArchive implements Archive on the local filesystem.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates a local archive rooted at basePath.
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &LocalArchive{
		basePath: basePath,
	}, nil
}

// Save stores a copy on disk under key.
func (a *LocalArchive) Save(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	fullPath := filepath.Join(a.basePath, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Clean up on error
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, nil
}

// Open retrieves an archived copy from disk.
func (a *LocalArchive) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	fullPath := filepath.Join(a.basePath, location)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("archived file not found: %s", location)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Archive keeps a retained copy of every submitted abstract so orphaned
// store assets can be reconciled later. It is never consulted on the
// submission path itself; a failed archive write is logged, not returned.
type Archive interface {
	// Save stores a copy under the given key and returns its location.
	Save(ctx context.Context, key, contentType string, data io.Reader) (string, error)

	// Open retrieves a previously saved copy by location.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// ArchiveType represents the archive backend type.
type ArchiveType string

const (
	ArchiveTypeLocal ArchiveType = "local"
	ArchiveTypeS3    ArchiveType = "s3"
	ArchiveTypeB2    ArchiveType = "b2"
)

// ArchiveConfig holds configuration for the archive backends.
type ArchiveConfig struct {
	Type         ArchiveType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
	B2KeyID      string // For Backblaze B2
	B2AppKey     string
	B2Bucket     string
}

// NewArchive creates an archive instance based on configuration.
func NewArchive(cfg ArchiveConfig) (Archive, error) {
	switch cfg.Type {
	case ArchiveTypeLocal:
		return NewLocalArchive(cfg.LocalPath)
	case ArchiveTypeS3:
		return NewS3Archive(cfg)
	case ArchiveTypeB2:
		return NewB2Archive(context.Background(), cfg.B2KeyID, cfg.B2AppKey, cfg.B2Bucket)
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Type)
	}
}

// NewArchiveFromEnv creates an archive instance from environment variables.
// Returns (nil, nil) when ARCHIVE_TYPE is unset: archiving is opt-in.
func NewArchiveFromEnv() (Archive, error) {
	archiveType := os.Getenv("ARCHIVE_TYPE")
	if archiveType == "" {
		return nil, nil
	}

	switch ArchiveType(archiveType) {
	case ArchiveTypeLocal:
		localPath := os.Getenv("ARCHIVE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./archive/abstracts"
		}
		return NewLocalArchive(localPath)

	case ArchiveTypeS3:
		cfg := ArchiveConfig{
			Type:         ArchiveTypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 archive")
		}
		return NewS3Archive(cfg)

	case ArchiveTypeB2:
		keyID := os.Getenv("B2_KEY_ID")
		appKey := os.Getenv("B2_APP_KEY")
		bucket := os.Getenv("B2_BUCKET")
		if keyID == "" || appKey == "" || bucket == "" {
			return nil, errors.New("B2_KEY_ID, B2_APP_KEY and B2_BUCKET are required for B2 archive")
		}
		return NewB2Archive(context.Background(), keyID, appKey, bucket)

	default:
		return nil, fmt.Errorf("unknown archive type: %s", archiveType)
	}
}

// NewArchiveKey generates a unique archive key for a submission file.
func NewArchiveKey(filename string) string {
	id := uuid.New()
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filename, ext)
	// Sanitize filename
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = strings.ReplaceAll(baseName, "/", "_")
	baseName = strings.ReplaceAll(baseName, "\\", "_")

	return fmt.Sprintf("%s/%s_%s%s", id.String()[:2], id.String(), baseName, ext)
}

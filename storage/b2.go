package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

// B2Archive implements Archive on Backblaze B2.
type B2Archive struct {
	client *b2.Client
	bucket *b2.Bucket
}

// NewB2Archive creates a new B2 archive instance.
func NewB2Archive(ctx context.Context, keyID, appKey, bucketName string) (*B2Archive, error) {
	client, err := b2.NewClient(ctx, keyID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Archive{client: client, bucket: bucket}, nil
}

// Save stores a copy in B2 under key. B2 infers the content type itself.
func (a *B2Archive) Save(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	obj := a.bucket.Object(key)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return key, nil
}

// Open retrieves an archived copy from B2.
func (a *B2Archive) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	return a.bucket.Object(location).NewReader(ctx), nil
}

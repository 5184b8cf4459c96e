package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalArchiveSaveAndOpen(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new local archive: %v", err)
	}

	key := NewArchiveKey("my abstract.pdf")
	location, err := archive.Save(context.Background(), key, "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if location != key {
		t.Errorf("location = %q, want %q", location, key)
	}

	r, err := archive.Open(context.Background(), location)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "%PDF" {
		t.Errorf("content = %q", content)
	}
}

func TestLocalArchiveOpenMissing(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	if err != nil {
		t.Fatalf("new local archive: %v", err)
	}

	if _, err := archive.Open(context.Background(), "no/such_file.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNewArchiveKey(t *testing.T) {
	key := NewArchiveKey("my abstract/v2.pdf")

	if strings.Contains(key[3:], " ") {
		t.Errorf("key contains spaces: %q", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key lost the extension: %q", key)
	}
	if key[2] != '/' {
		t.Errorf("key missing prefix directory: %q", key)
	}

	if key == NewArchiveKey("my abstract/v2.pdf") {
		t.Error("keys for identical filenames are not unique")
	}
}

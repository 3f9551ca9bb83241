package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filmoteka/catalog-api/internal/core/ports"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	url, err := store.Save(ctx, ports.FileAvatar, "photo.PNG", []byte("fake image"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/avatars/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("extension not kept lowercase: %q", url)
	}

	onDisk := filepath.Join(root, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete")
	}
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	first, err := store.Save(ctx, ports.FilePoster, "poster.jpg", []byte("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save(ctx, ports.FilePoster, "poster.jpg", []byte("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("same name for two uploads: %q", first)
	}
}

func TestLocalStoreDeleteIgnoresForeignPaths(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	marker := filepath.Join(root, "keep.txt")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	for _, url := range []string{
		"https://cdn.example.com/avatars/a.png",
		"/uploads/../keep.txt",
		"/uploads/avatars/missing.png",
		"",
	} {
		if err := store.Delete(ctx, url); err != nil {
			t.Fatalf("Delete(%q): %v", url, err)
		}
	}

	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("marker removed: %v", err)
	}
}

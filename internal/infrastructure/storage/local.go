// Package storage implements file persistence on the local filesystem.
// Stored files are served under the /uploads route.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filmoteka/catalog-api/internal/core/ports"
)

const urlPrefix = "/uploads"

// LocalStore writes uploaded files under a root directory, one subdirectory
// per file kind. Names are random so uploads never collide or overwrite.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save writes content under root/<kind>/<random>.<ext> and returns the
// public URL path for it.
func (s *LocalStore) Save(_ context.Context, kind ports.FileKind, originalName string, content []byte) (string, error) {
	dir := filepath.Join(s.root, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name, err := randomName(originalName)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", urlPrefix, kind, name), nil
}

// Delete removes the file behind a public URL path. Paths outside the uploads
// prefix and already-missing files are ignored.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, urlPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// randomName builds a collision-free filename keeping the original extension.
func randomName(originalName string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate filename: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	return hex.EncodeToString(buf) + ext, nil
}

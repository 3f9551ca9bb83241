package ports

import "context"

// FileKind selects the storage folder for an uploaded file.
type FileKind string

const (
	FileAvatar      FileKind = "avatars"
	FilePoster      FileKind = "posters"
	FilePersonPhoto FileKind = "persons"
)

// FileStore persists uploaded binary files and returns a public URL path.
type FileStore interface {
	Save(ctx context.Context, kind FileKind, originalName string, content []byte) (string, error)

	// Delete removes a previously stored file by its public URL path.
	// Unknown paths are ignored.
	Delete(ctx context.Context, url string) error
}

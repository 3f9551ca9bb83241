package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// ContentInput carries the payload for creating or updating a catalogue
// entry. DurationMin applies to movies, Seasons to series.
type ContentInput struct {
	Type          domain.ContentType
	Title         string
	OriginalTitle string
	Description   string
	ReleaseYear   int
	AgeRating     int
	DurationMin   int
	Seasons       int
	GenreIDs      []string
}

// ContentPage is one page of catalogue entries.
type ContentPage struct {
	Items []*domain.Content
	Page  int
	Limit int
	Total int64
}

// ContentService implements catalogue reads and the admin-only writes.
type ContentService interface {
	List(ctx context.Context, contentType domain.ContentType, page, limit int) (*ContentPage, error)
	Get(ctx context.Context, id string) (*domain.Content, error)
	Create(ctx context.Context, input ContentInput) (*domain.Content, error)
	Update(ctx context.Context, id string, input ContentInput) (*domain.Content, error)
	Delete(ctx context.Context, id string) error

	// SetPoster stores the uploaded poster image and attaches its URL.
	SetPoster(ctx context.Context, id string, poster FileUpload) (*domain.Content, error)

	ListGenres(ctx context.Context) ([]*domain.Genre, error)
	SearchGenres(ctx context.Context, query string) ([]*domain.Genre, error)
	CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error)
	UpdateGenre(ctx context.Context, id, name, slug string) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, id string) error
}

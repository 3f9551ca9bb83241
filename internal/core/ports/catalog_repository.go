package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// ContentRepository defines persistence for catalogue entries.
type ContentRepository interface {
	Create(ctx context.Context, content *domain.Content) (*domain.Content, error)
	FindByID(ctx context.Context, id string) (*domain.Content, error)
	FindByTitle(ctx context.Context, title, originalTitle string) (*domain.Content, error)
	List(ctx context.Context, contentType domain.ContentType, page, limit int) ([]*domain.Content, int64, error)
	Update(ctx context.Context, content *domain.Content) (*domain.Content, error)
	Delete(ctx context.Context, id string) error
}

// GenreRepository defines persistence for genres. The (name, slug) pair is
// unique; a duplicate insert surfaces as domain.ErrGenreExists.
type GenreRepository interface {
	Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	FindByID(ctx context.Context, id string) (*domain.Genre, error)
	List(ctx context.Context) ([]*domain.Genre, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Genre, error)
	Update(ctx context.Context, genre *domain.Genre) (*domain.Genre, error)
	Delete(ctx context.Context, id string) error
}

// ContentCache is a read-through cache for content detail lookups.
// A miss returns (nil, nil); cache failures are soft and never abort a read.
type ContentCache interface {
	Get(ctx context.Context, id string) (*domain.Content, error)
	Set(ctx context.Context, content *domain.Content) error
	Invalidate(ctx context.Context, id string) error
}

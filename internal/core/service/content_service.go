package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ContentService implements catalogue reads and admin writes. Detail reads
// go through a read-through cache; cache failures degrade to repository
// reads and are never fatal.
type ContentService struct {
	content ports.ContentRepository
	genres  ports.GenreRepository
	credits ports.CreditRepository
	cache   ports.ContentCache
	files   ports.FileStore
	logger  zerolog.Logger
}

func NewContentService(content ports.ContentRepository, genres ports.GenreRepository, credits ports.CreditRepository, cache ports.ContentCache, files ports.FileStore, logger zerolog.Logger) *ContentService {
	return &ContentService{content: content, genres: genres, credits: credits, cache: cache, files: files, logger: logger}
}

func (s *ContentService) List(ctx context.Context, contentType domain.ContentType, page, limit int) (*ports.ContentPage, error) {
	page, limit = clampPage(page, limit)
	items, total, err := s.content.List(ctx, contentType, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ContentPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (s *ContentService) Get(ctx context.Context, id string) (*domain.Content, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("content_id", id).Msg("content cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	content, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, content); err != nil {
		s.logger.Warn().Err(err).Str("content_id", id).Msg("content cache write failed")
	}
	return content, nil
}

func (s *ContentService) Create(ctx context.Context, input ports.ContentInput) (*domain.Content, error) {
	if existing, err := s.content.FindByTitle(ctx, input.Title, input.OriginalTitle); err == nil && existing != nil {
		return nil, domain.ErrContentExists
	}

	now := time.Now().UTC()
	content := &domain.Content{
		Type:          input.Type,
		Title:         input.Title,
		OriginalTitle: input.OriginalTitle,
		Description:   input.Description,
		ReleaseYear:   input.ReleaseYear,
		AgeRating:     input.AgeRating,
		DurationMin:   input.DurationMin,
		Seasons:       input.Seasons,
		GenreIDs:      input.GenreIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.content.Create(ctx, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("content_id", created.ID).Str("title", created.Title).Str("type", string(created.Type)).Msg("content created")
	return created, nil
}

func (s *ContentService) Update(ctx context.Context, id string, input ports.ContentInput) (*domain.Content, error) {
	content, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Title = input.Title
	content.OriginalTitle = input.OriginalTitle
	content.Description = input.Description
	content.ReleaseYear = input.ReleaseYear
	content.AgeRating = input.AgeRating
	content.DurationMin = input.DurationMin
	content.Seasons = input.Seasons
	content.GenreIDs = input.GenreIDs
	content.UpdatedAt = time.Now().UTC()

	updated, err := s.content.Update(ctx, content)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ContentService) Delete(ctx context.Context, id string) error {
	if _, err := s.content.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.content.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.credits.DeleteByContent(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("content_id", id).Msg("credits of deleted content not removed")
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("content_id", id).Msg("content deleted")
	return nil
}

// SetPoster stores the uploaded poster and attaches its URL to the entry.
func (s *ContentService) SetPoster(ctx context.Context, id string, poster ports.FileUpload) (*domain.Content, error) {
	content, err := s.content.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if content.PosterURL != "" {
		if err := s.files.Delete(ctx, content.PosterURL); err != nil {
			s.logger.Warn().Err(err).Str("url", content.PosterURL).Msg("stale poster not removed")
		}
	}

	url, err := s.files.Save(ctx, ports.FilePoster, poster.Filename, poster.Content)
	if err != nil {
		return nil, fmt.Errorf("save poster: %w", err)
	}

	content.PosterURL = url
	content.UpdatedAt = time.Now().UTC()

	updated, err := s.content.Update(ctx, content)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ContentService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.genres.List(ctx)
}

func (s *ContentService) SearchGenres(ctx context.Context, query string) ([]*domain.Genre, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Genre{}, nil
	}
	return s.genres.Search(ctx, query, 10)
}

func (s *ContentService) CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error) {
	return s.genres.Create(ctx, &domain.Genre{Name: name, Slug: slug})
}

func (s *ContentService) UpdateGenre(ctx context.Context, id, name, slug string) (*domain.Genre, error) {
	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	genre.Name = name
	genre.Slug = slug
	return s.genres.Update(ctx, genre)
}

func (s *ContentService) DeleteGenre(ctx context.Context, id string) error {
	if _, err := s.genres.FindByID(ctx, id); err != nil {
		return err
	}
	return s.genres.Delete(ctx, id)
}

func (s *ContentService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("content_id", id).Msg("content cache invalidation failed")
	}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

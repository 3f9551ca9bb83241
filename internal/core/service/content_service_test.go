package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

type stubContentRepo struct {
	items  map[string]*domain.Content
	nextID int
	finds  int
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{items: make(map[string]*domain.Content)}
}

func (r *stubContentRepo) Create(_ context.Context, content *domain.Content) (*domain.Content, error) {
	r.nextID++
	clone := *content
	clone.ID = fmt.Sprintf("c%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContentRepo) FindByID(_ context.Context, id string) (*domain.Content, error) {
	r.finds++
	if c, ok := r.items[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrContentNotFound
}

func (r *stubContentRepo) FindByTitle(_ context.Context, title, originalTitle string) (*domain.Content, error) {
	for _, c := range r.items {
		if c.Title == title || (originalTitle != "" && c.OriginalTitle == originalTitle) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrContentNotFound
}

func (r *stubContentRepo) List(_ context.Context, contentType domain.ContentType, _, _ int) ([]*domain.Content, int64, error) {
	var out []*domain.Content
	for _, c := range r.items {
		if contentType == "" || c.Type == contentType {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubContentRepo) Update(_ context.Context, content *domain.Content) (*domain.Content, error) {
	if _, ok := r.items[content.ID]; !ok {
		return nil, domain.ErrContentNotFound
	}
	clone := *content
	r.items[content.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubContentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.items, id)
	return nil
}

type stubGenreRepo struct {
	genres map[string]*domain.Genre
	nextID int
}

func newStubGenreRepo() *stubGenreRepo {
	return &stubGenreRepo{genres: make(map[string]*domain.Genre)}
}

func (r *stubGenreRepo) Create(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	for _, g := range r.genres {
		if g.Name == genre.Name && g.Slug == genre.Slug {
			return nil, domain.ErrGenreExists
		}
	}
	r.nextID++
	clone := *genre
	clone.ID = fmt.Sprintf("g%d", r.nextID)
	r.genres[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGenreRepo) FindByID(_ context.Context, id string) (*domain.Genre, error) {
	if g, ok := r.genres[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, domain.ErrGenreNotFound
}

func (r *stubGenreRepo) List(_ context.Context) ([]*domain.Genre, error) {
	var out []*domain.Genre
	for _, g := range r.genres {
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubGenreRepo) Search(_ context.Context, query string, _ int) ([]*domain.Genre, error) {
	var out []*domain.Genre
	for _, g := range r.genres {
		if g.Name == query {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubGenreRepo) Update(_ context.Context, genre *domain.Genre) (*domain.Genre, error) {
	if _, ok := r.genres[genre.ID]; !ok {
		return nil, domain.ErrGenreNotFound
	}
	clone := *genre
	r.genres[genre.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGenreRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.genres[id]; !ok {
		return domain.ErrGenreNotFound
	}
	delete(r.genres, id)
	return nil
}

type stubContentCache struct {
	entries     map[string]*domain.Content
	invalidated []string
}

func newStubContentCache() *stubContentCache {
	return &stubContentCache{entries: make(map[string]*domain.Content)}
}

func (c *stubContentCache) Get(_ context.Context, id string) (*domain.Content, error) {
	if entry, ok := c.entries[id]; ok {
		clone := *entry
		return &clone, nil
	}
	return nil, nil
}

func (c *stubContentCache) Set(_ context.Context, content *domain.Content) error {
	clone := *content
	c.entries[content.ID] = &clone
	return nil
}

func (c *stubContentCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type stubCreditRepo struct {
	credits map[string][]*domain.Credit
}

func newStubCreditRepo() *stubCreditRepo {
	return &stubCreditRepo{credits: make(map[string][]*domain.Credit)}
}

func (r *stubCreditRepo) Replace(_ context.Context, contentID string, credits []*domain.Credit) error {
	r.credits[contentID] = credits
	return nil
}

func (r *stubCreditRepo) ListByContent(_ context.Context, contentID string) ([]*domain.Credit, error) {
	return r.credits[contentID], nil
}

func (r *stubCreditRepo) CountByPerson(_ context.Context, personID string) (int64, error) {
	var n int64
	for _, set := range r.credits {
		for _, credit := range set {
			if credit.PersonID == personID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubCreditRepo) DeleteByContent(_ context.Context, contentID string) error {
	delete(r.credits, contentID)
	return nil
}

func newTestContentService() (*ContentService, *stubContentRepo, *stubGenreRepo, *stubContentCache) {
	repo := newStubContentRepo()
	genres := newStubGenreRepo()
	cache := newStubContentCache()
	svc := NewContentService(repo, genres, newStubCreditRepo(), cache, &stubFileStore{}, zerolog.Nop())
	return svc, repo, genres, cache
}

func seedContent(t *testing.T, svc *ContentService, title string) *domain.Content {
	t.Helper()
	content, err := svc.Create(context.Background(), ports.ContentInput{
		Type:        domain.TypeMovie,
		Title:       title,
		Description: "desc",
		ReleaseYear: 2020,
		DurationMin: 120,
	})
	if err != nil {
		t.Fatalf("create content failed: %v", err)
	}
	return content
}

func TestContentService_CreateDuplicateTitle(t *testing.T) {
	svc, _, _, _ := newTestContentService()
	seedContent(t, svc, "Solaris")

	_, err := svc.Create(context.Background(), ports.ContentInput{
		Type: domain.TypeMovie, Title: "Solaris", ReleaseYear: 1972,
	})
	if err != domain.ErrContentExists {
		t.Fatalf("expected ErrContentExists, got %v", err)
	}
}

func TestContentService_GetUsesCache(t *testing.T) {
	svc, repo, _, _ := newTestContentService()
	content := seedContent(t, svc, "Stalker")

	repo.finds = 0
	if _, err := svc.Get(context.Background(), content.ID); err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	if repo.finds != 1 {
		t.Fatalf("expected repository read on miss, got %d", repo.finds)
	}

	if _, err := svc.Get(context.Background(), content.ID); err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if repo.finds != 1 {
		t.Fatalf("cache hit must skip the repository, reads=%d", repo.finds)
	}
}

func TestContentService_UpdateInvalidatesCache(t *testing.T) {
	svc, _, _, cache := newTestContentService()
	content := seedContent(t, svc, "Mirror")

	if _, err := svc.Get(context.Background(), content.ID); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), content.ID, ports.ContentInput{
		Type: domain.TypeMovie, Title: "Mirror", ReleaseYear: 1975, DurationMin: 107,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ReleaseYear != 1975 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(cache.invalidated) == 0 || cache.invalidated[0] != content.ID {
		t.Fatalf("cache entry not invalidated: %v", cache.invalidated)
	}
}

func TestContentService_DeleteMissing(t *testing.T) {
	svc, _, _, _ := newTestContentService()
	if err := svc.Delete(context.Background(), "nope"); err != domain.ErrContentNotFound {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestContentService_DeleteClearsCredits(t *testing.T) {
	svc, _, _, _ := newTestContentService()
	content := seedContent(t, svc, "Mirror")

	credits := svc.credits.(*stubCreditRepo)
	if err := credits.Replace(context.Background(), content.ID, []*domain.Credit{
		{ContentID: content.ID, PersonID: "p1", RoleID: "r1"},
	}); err != nil {
		t.Fatalf("seed credits failed: %v", err)
	}

	if err := svc.Delete(context.Background(), content.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if left, _ := credits.ListByContent(context.Background(), content.ID); len(left) != 0 {
		t.Fatalf("credits of deleted content not removed: %v", left)
	}
}

func TestContentService_GenreSearchEmptyQuery(t *testing.T) {
	svc, _, genres, _ := newTestContentService()
	if _, err := genres.Create(context.Background(), &domain.Genre{Name: "drama", Slug: "drama"}); err != nil {
		t.Fatalf("seed genre failed: %v", err)
	}

	out, err := svc.SearchGenres(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("blank query must return no results")
	}
}

func TestContentService_ClampPage(t *testing.T) {
	if p, l := clampPage(0, 0); p != 1 || l != defaultPageLimit {
		t.Fatalf("unexpected defaults: %d %d", p, l)
	}
	if _, l := clampPage(1, 10*maxPageLimit); l != maxPageLimit {
		t.Fatalf("limit not clamped: %d", l)
	}
}

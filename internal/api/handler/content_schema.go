package handler

import "github.com/filmoteka/catalog-api/internal/core/domain"

type contentRequest struct {
	Type          string   `json:"type"           validate:"required,oneof=MOVIE SERIES"`
	Title         string   `json:"title"          validate:"required,max=200"`
	OriginalTitle string   `json:"original_title" validate:"omitempty,max=200"`
	Description   string   `json:"description"    validate:"required"`
	ReleaseYear   int      `json:"release_year"   validate:"required,gte=1888,lte=2100"`
	AgeRating     int      `json:"age_rating"     validate:"omitempty,gte=0,lte=21"`
	DurationMin   int      `json:"duration_min"   validate:"omitempty,gte=1"`
	Seasons       int      `json:"seasons"        validate:"omitempty,gte=1"`
	GenreIDs      []string `json:"genre_ids"`
}

type genreRequest struct {
	Name string `json:"name" validate:"required,max=64"`
	Slug string `json:"slug" validate:"required,max=64"`
}

type contentPageResponse struct {
	Items []*domain.Content `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

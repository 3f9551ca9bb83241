package domain

import "time"

// ContentType distinguishes movies from series.
type ContentType string

const (
	TypeMovie  ContentType = "MOVIE"
	TypeSeries ContentType = "SERIES"
)

// Content is a catalogue entry, either a movie or a series. Type-specific
// fields (Duration for movies, Seasons for series) are zero for the other kind.
type Content struct {
	ID            string      `json:"id"`
	Type          ContentType `json:"type"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"original_title,omitempty"`
	Description   string      `json:"description"`
	ReleaseYear   int         `json:"release_year"`
	PosterURL     string      `json:"poster_url,omitempty"`
	AgeRating     int         `json:"age_rating,omitempty"`
	DurationMin   int         `json:"duration_min,omitempty"`
	Seasons       int         `json:"seasons,omitempty"`
	GenreIDs      []string    `json:"genre_ids,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Genre is a catalogue classification tag. Name and slug are unique together.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Comment is a user remark on a content entry. A non-empty ParentID marks it
// as a reply; replies must target a comment on the same content.
type Comment struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	UserID    string    `json:"user_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentRating is one user's score for one content entry, unique per
// (user, content) pair.
type ContentRating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ContentID string    `json:"content_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bookmark marks a content entry saved by a user, unique per (user, content).
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ContentID string    `json:"content_id"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import "time"

// Person is an actor, director or other figure credited in content. Dates are
// optional; a nil DeathDate means the person is alive (or the date is unknown).
type Person struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	Biography string     `json:"biography,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DeathDate *time.Time `json:"death_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PersonRole names a credit function such as actor or director. Names are
// unique.
type PersonRole struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Credit links a person to a content entry under a role. Credits for a
// content entry are replaced as a whole set.
type Credit struct {
	ID        string `json:"id"`
	ContentID string `json:"content_id"`
	PersonID  string `json:"person_id"`
	RoleID    string `json:"role_id"`
}

// CommentRating is one user's like or dislike of a comment, unique per
// (user, comment) pair.
type CommentRating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CommentID string    `json:"comment_id"`
	Positive  bool      `json:"positive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

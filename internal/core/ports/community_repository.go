package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// CommentRepository defines persistence for comments and replies.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)

	// ListByContent returns top-level comments for a content entry, newest
	// first, with the total count of top-level comments.
	ListByContent(ctx context.Context, contentID string, page, limit int) ([]*domain.Comment, int64, error)

	// ListReplies returns replies to a comment, oldest first.
	ListReplies(ctx context.Context, parentID string, page, limit int) ([]*domain.Comment, error)

	Delete(ctx context.Context, id string) error
}

// RatingRepository defines persistence for content ratings. One rating per
// (user, content) pair, enforced by the storage layer.
type RatingRepository interface {
	// Upsert creates or replaces the user's rating for a content entry.
	Upsert(ctx context.Context, rating *domain.ContentRating) (*domain.ContentRating, error)
	ListByContent(ctx context.Context, contentID string) ([]*domain.ContentRating, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.ContentRating, error)
	Delete(ctx context.Context, userID, contentID string) error
}

// CommentRatingRepository defines persistence for comment likes and
// dislikes. One rating per (user, comment) pair, enforced by the storage
// layer.
type CommentRatingRepository interface {
	// Upsert creates or replaces the user's rating for a comment.
	Upsert(ctx context.Context, rating *domain.CommentRating) (*domain.CommentRating, error)
	ListByComment(ctx context.Context, commentID string) ([]*domain.CommentRating, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CommentRating, error)
	Delete(ctx context.Context, userID, commentID string) error
}

// BookmarkRepository defines persistence for bookmarks. A duplicate insert
// for the same (user, content) pair surfaces as domain.ErrBookmarkExists.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	Delete(ctx context.Context, userID, contentID string) error
}

package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// CommentPage is one page of top-level comments.
type CommentPage struct {
	Items []*domain.Comment
	Page  int
	Limit int
	Total int64
}

// CommunityService implements comments, ratings and bookmarks.
type CommunityService interface {
	ListComments(ctx context.Context, contentID string, page, limit int) (*CommentPage, error)
	ListReplies(ctx context.Context, commentID string, page, limit int) ([]*domain.Comment, error)

	// CreateComment requires the content to exist; when parentID is set the
	// parent must exist and belong to the same content.
	CreateComment(ctx context.Context, userID, contentID, parentID, text string) (*domain.Comment, error)

	// DeleteComment allows the author, a moderator or an admin.
	DeleteComment(ctx context.Context, userID, role, commentID string) error

	// RateContent upserts the user's 1-10 rating for a content entry.
	RateContent(ctx context.Context, userID, contentID string, rating int) (*domain.ContentRating, error)
	RemoveRating(ctx context.Context, userID, contentID string) error
	ListUserRatings(ctx context.Context, userID string) ([]*domain.ContentRating, error)

	// RateComment upserts the user's like or dislike of a comment.
	RateComment(ctx context.Context, userID, commentID string, positive bool) (*domain.CommentRating, error)
	RemoveCommentRating(ctx context.Context, userID, commentID string) error
	ListCommentRatings(ctx context.Context, commentID string) ([]*domain.CommentRating, error)
	ListUserCommentRatings(ctx context.Context, userID string) ([]*domain.CommentRating, error)

	AddBookmark(ctx context.Context, userID, contentID string) (*domain.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, contentID string) error
	ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error)
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// CommunityService implements comments, content and comment ratings, and
// bookmarks.
type CommunityService struct {
	content        ports.ContentRepository
	comments       ports.CommentRepository
	ratings        ports.RatingRepository
	commentRatings ports.CommentRatingRepository
	bookmarks      ports.BookmarkRepository
	logger         zerolog.Logger
}

func NewCommunityService(
	content ports.ContentRepository,
	comments ports.CommentRepository,
	ratings ports.RatingRepository,
	commentRatings ports.CommentRatingRepository,
	bookmarks ports.BookmarkRepository,
	logger zerolog.Logger,
) *CommunityService {
	return &CommunityService{
		content:        content,
		comments:       comments,
		ratings:        ratings,
		commentRatings: commentRatings,
		bookmarks:      bookmarks,
		logger:         logger,
	}
}

func (s *CommunityService) ListComments(ctx context.Context, contentID string, page, limit int) (*ports.CommentPage, error) {
	page, limit = clampPage(page, limit)
	items, total, err := s.comments.ListByContent(ctx, contentID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.CommentPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (s *CommunityService) ListReplies(ctx context.Context, commentID string, page, limit int) ([]*domain.Comment, error) {
	page, limit = clampPage(page, limit)
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.comments.ListReplies(ctx, commentID, page, limit)
}

// CreateComment requires the content to exist; a reply must target a comment
// on the same content.
func (s *CommunityService) CreateComment(ctx context.Context, userID, contentID, parentID, text string) (*domain.Comment, error) {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return nil, err
	}

	if parentID != "" {
		parent, err := s.comments.FindByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent.ContentID != contentID {
			return nil, domain.ErrCommentMismatch
		}
	}

	comment := &domain.Comment{
		ContentID: contentID,
		UserID:    userID,
		ParentID:  parentID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	return s.comments.Create(ctx, comment)
}

// DeleteComment allows the author, a moderator or an admin.
func (s *CommunityService) DeleteComment(ctx context.Context, userID, role, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && role != domain.RoleModerator && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info().Str("comment_id", commentID).Str("deleted_by", userID).Msg("comment deleted")
	return nil
}

// RateContent upserts the user's rating, replacing any previous one.
func (s *CommunityService) RateContent(ctx context.Context, userID, contentID string, rating int) (*domain.ContentRating, error) {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.ratings.Upsert(ctx, &domain.ContentRating{
		UserID:    userID,
		ContentID: contentID,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CommunityService) RemoveRating(ctx context.Context, userID, contentID string) error {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return err
	}
	return s.ratings.Delete(ctx, userID, contentID)
}

func (s *CommunityService) ListUserRatings(ctx context.Context, userID string) ([]*domain.ContentRating, error) {
	return s.ratings.ListByUser(ctx, userID)
}

// RateComment upserts the user's like or dislike, replacing any previous one.
func (s *CommunityService) RateComment(ctx context.Context, userID, commentID string, positive bool) (*domain.CommentRating, error) {
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.commentRatings.Upsert(ctx, &domain.CommentRating{
		UserID:    userID,
		CommentID: commentID,
		Positive:  positive,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CommunityService) RemoveCommentRating(ctx context.Context, userID, commentID string) error {
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return err
	}
	return s.commentRatings.Delete(ctx, userID, commentID)
}

func (s *CommunityService) ListCommentRatings(ctx context.Context, commentID string) ([]*domain.CommentRating, error) {
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRatings.ListByComment(ctx, commentID)
}

func (s *CommunityService) ListUserCommentRatings(ctx context.Context, userID string) ([]*domain.CommentRating, error) {
	return s.commentRatings.ListByUser(ctx, userID)
}

func (s *CommunityService) AddBookmark(ctx context.Context, userID, contentID string) (*domain.Bookmark, error) {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return nil, err
	}
	return s.bookmarks.Create(ctx, &domain.Bookmark{
		UserID:    userID,
		ContentID: contentID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *CommunityService) RemoveBookmark(ctx context.Context, userID, contentID string) error {
	if _, err := s.content.FindByID(ctx, contentID); err != nil {
		return err
	}
	return s.bookmarks.Delete(ctx, userID, contentID)
}

func (s *CommunityService) ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return s.bookmarks.ListByUser(ctx, userID)
}

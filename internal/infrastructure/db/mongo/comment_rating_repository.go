package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const commentRatingsCollection = "comment_ratings"

type MongoCommentRatingRepository struct {
	coll *mongo.Collection
}

func NewCommentRatingRepository(db *mongo.Database) *MongoCommentRatingRepository {
	return &MongoCommentRatingRepository{coll: db.Collection(commentRatingsCollection)}
}

type mongoCommentRating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	CommentID string             `bson:"comment_id"`
	Positive  bool               `bson:"positive"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

// Upsert creates or replaces the user's rating, relying on the unique
// (user_id, comment_id) index.
func (r *MongoCommentRatingRepository) Upsert(ctx context.Context, rating *domain.CommentRating) (*domain.CommentRating, error) {
	filter := bson.M{"user_id": rating.UserID, "comment_id": rating.CommentID}
	update := bson.M{
		"$set": bson.M{
			"positive":   rating.Positive,
			"updated_at": rating.UpdatedAt.Unix(),
		},
		"$setOnInsert": bson.M{
			"user_id":    rating.UserID,
			"comment_id": rating.CommentID,
			"created_at": rating.CreatedAt.Unix(),
		},
	}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("upsert comment rating: %w", err)
	}

	var mr mongoCommentRating
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		return nil, fmt.Errorf("read back comment rating: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoCommentRatingRepository) ListByComment(ctx context.Context, commentID string) ([]*domain.CommentRating, error) {
	return r.find(ctx, bson.M{"comment_id": commentID})
}

func (r *MongoCommentRatingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CommentRating, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoCommentRatingRepository) Delete(ctx context.Context, userID, commentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "comment_id": commentID})
	if err != nil {
		return fmt.Errorf("delete comment rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentRatingNotFound
	}
	return nil
}

func (r *MongoCommentRatingRepository) find(ctx context.Context, filter bson.M) ([]*domain.CommentRating, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find comment ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.CommentRating
	for cursor.Next(ctx) {
		var mr mongoCommentRating
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode comment rating: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cursor.Err()
}

func (mr *mongoCommentRating) toDomain() *domain.CommentRating {
	return &domain.CommentRating{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		CommentID: mr.CommentID,
		Positive:  mr.Positive,
		CreatedAt: unixToTime(mr.CreatedAt),
		UpdatedAt: unixToTime(mr.UpdatedAt),
	}
}

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

const ratingsCollection = "content_ratings"

type MongoRatingRepository struct {
	coll *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *MongoRatingRepository {
	return &MongoRatingRepository{coll: db.Collection(ratingsCollection)}
}

type mongoRating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ContentID string             `bson:"content_id"`
	Rating    int                `bson:"rating"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

// Upsert creates or replaces the user's rating, relying on the unique
// (user_id, content_id) index.
func (r *MongoRatingRepository) Upsert(ctx context.Context, rating *domain.ContentRating) (*domain.ContentRating, error) {
	filter := bson.M{"user_id": rating.UserID, "content_id": rating.ContentID}
	update := bson.M{
		"$set": bson.M{
			"rating":     rating.Rating,
			"updated_at": rating.UpdatedAt.Unix(),
		},
		"$setOnInsert": bson.M{
			"user_id":    rating.UserID,
			"content_id": rating.ContentID,
			"created_at": rating.CreatedAt.Unix(),
		},
	}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	var mr mongoRating
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		return nil, fmt.Errorf("read back rating: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoRatingRepository) ListByContent(ctx context.Context, contentID string) ([]*domain.ContentRating, error) {
	return r.find(ctx, bson.M{"content_id": contentID})
}

func (r *MongoRatingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ContentRating, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoRatingRepository) Delete(ctx context.Context, userID, contentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "content_id": contentID})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}

func (r *MongoRatingRepository) find(ctx context.Context, filter bson.M) ([]*domain.ContentRating, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.ContentRating
	for cursor.Next(ctx) {
		var mr mongoRating
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cursor.Err()
}

func (mr *mongoRating) toDomain() *domain.ContentRating {
	return &domain.ContentRating{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		ContentID: mr.ContentID,
		Rating:    mr.Rating,
		CreatedAt: unixToTime(mr.CreatedAt),
		UpdatedAt: unixToTime(mr.UpdatedAt),
	}
}

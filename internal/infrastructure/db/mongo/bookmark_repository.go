package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const bookmarksCollection = "bookmarks"

type MongoBookmarkRepository struct {
	coll *mongo.Collection
}

func NewBookmarkRepository(db *mongo.Database) *MongoBookmarkRepository {
	return &MongoBookmarkRepository{coll: db.Collection(bookmarksCollection)}
}

type mongoBookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ContentID string             `bson:"content_id"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error) {
	mb := mongoBookmark{
		UserID:    bookmark.UserID,
		ContentID: bookmark.ContentID,
		CreatedAt: bookmark.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, mb)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBookmarkExists
		}
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	mb.ID = oid
	return mb.toDomain(), nil
}

func (r *MongoBookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Bookmark
	for cursor.Next(ctx) {
		var mb mongoBookmark
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode bookmark: %w", err)
		}
		out = append(out, mb.toDomain())
	}
	return out, cursor.Err()
}

func (r *MongoBookmarkRepository) Delete(ctx context.Context, userID, contentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "content_id": contentID})
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (mb *mongoBookmark) toDomain() *domain.Bookmark {
	return &domain.Bookmark{
		ID:        mb.ID.Hex(),
		UserID:    mb.UserID,
		ContentID: mb.ContentID,
		CreatedAt: unixToTime(mb.CreatedAt),
	}
}

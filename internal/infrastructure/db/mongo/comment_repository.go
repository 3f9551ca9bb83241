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

const commentsCollection = "comments"

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentsCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ContentID string             `bson:"content_id"`
	UserID    string             `bson:"user_id"`
	ParentID  string             `bson:"parent_id,omitempty"`
	Text      string             `bson:"text"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := mongoComment{
		ContentID: comment.ContentID,
		UserID:    comment.UserID,
		ParentID:  comment.ParentID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	clone := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone.ID = oid.Hex()
	}
	return &clone, nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return mc.toDomain(), nil
}

// ListByContent returns top-level comments newest first with the total count.
func (r *MongoCommentRepository) ListByContent(ctx context.Context, contentID string, page, limit int) ([]*domain.Comment, int64, error) {
	filter := bson.M{"content_id": contentID, "parent_id": bson.M{"$exists": false}}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListReplies returns replies oldest first.
func (r *MongoCommentRepository) ListReplies(ctx context.Context, parentID string, page, limit int) ([]*domain.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	return r.find(ctx, bson.M{"parent_id": parentID}, opts)
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	// Replies go with their parent.
	if _, err := r.coll.DeleteMany(ctx, bson.M{"parent_id": id}); err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Comment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Comment
	for cursor.Next(ctx) {
		var mc mongoComment
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cursor.Err()
}

func (mc *mongoComment) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        mc.ID.Hex(),
		ContentID: mc.ContentID,
		UserID:    mc.UserID,
		ParentID:  mc.ParentID,
		Text:      mc.Text,
		CreatedAt: unixToTime(mc.CreatedAt),
	}
}

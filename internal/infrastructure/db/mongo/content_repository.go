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

const contentCollection = "content"

type MongoContentRepository struct {
	coll *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *MongoContentRepository {
	return &MongoContentRepository{coll: db.Collection(contentCollection)}
}

type mongoContent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Type          string             `bson:"type"`
	Title         string             `bson:"title"`
	OriginalTitle string             `bson:"original_title,omitempty"`
	Description   string             `bson:"description"`
	ReleaseYear   int                `bson:"release_year"`
	PosterURL     string             `bson:"poster_url,omitempty"`
	AgeRating     int                `bson:"age_rating,omitempty"`
	DurationMin   int                `bson:"duration_min,omitempty"`
	Seasons       int                `bson:"seasons,omitempty"`
	GenreIDs      []string           `bson:"genre_ids,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoContentRepository) Create(ctx context.Context, content *domain.Content) (*domain.Content, error) {
	doc := toMongoContent(content)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrContentExists
		}
		return nil, fmt.Errorf("insert content: %w", err)
	}

	clone := *content
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone.ID = oid.Hex()
	}
	return &clone, nil
}

func (r *MongoContentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	var mc mongoContent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoContentRepository) FindByTitle(ctx context.Context, title, originalTitle string) (*domain.Content, error) {
	clauses := []bson.M{{"title": title}}
	if originalTitle != "" {
		clauses = append(clauses, bson.M{"original_title": originalTitle})
	}

	var mc mongoContent
	if err := r.coll.FindOne(ctx, bson.M{"$or": clauses}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content by title: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *MongoContentRepository) List(ctx context.Context, contentType domain.ContentType, page, limit int) ([]*domain.Content, int64, error) {
	filter := bson.M{}
	if contentType != "" {
		filter["type"] = string(contentType)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Content
	for cursor.Next(ctx) {
		var mc mongoContent
		if err := cursor.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode content: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	return out, total, nil
}

func (r *MongoContentRepository) Update(ctx context.Context, content *domain.Content) (*domain.Content, error) {
	oid, err := primitive.ObjectIDFromHex(content.ID)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	doc := toMongoContent(content)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrContentNotFound
	}

	clone := *content
	return &clone, nil
}

func (r *MongoContentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func toMongoContent(content *domain.Content) mongoContent {
	return mongoContent{
		Type:          string(content.Type),
		Title:         content.Title,
		OriginalTitle: content.OriginalTitle,
		Description:   content.Description,
		ReleaseYear:   content.ReleaseYear,
		PosterURL:     content.PosterURL,
		AgeRating:     content.AgeRating,
		DurationMin:   content.DurationMin,
		Seasons:       content.Seasons,
		GenreIDs:      content.GenreIDs,
		CreatedAt:     content.CreatedAt.Unix(),
		UpdatedAt:     content.UpdatedAt.Unix(),
	}
}

func (mc *mongoContent) toDomain() *domain.Content {
	return &domain.Content{
		ID:            mc.ID.Hex(),
		Type:          domain.ContentType(mc.Type),
		Title:         mc.Title,
		OriginalTitle: mc.OriginalTitle,
		Description:   mc.Description,
		ReleaseYear:   mc.ReleaseYear,
		PosterURL:     mc.PosterURL,
		AgeRating:     mc.AgeRating,
		DurationMin:   mc.DurationMin,
		Seasons:       mc.Seasons,
		GenreIDs:      mc.GenreIDs,
		CreatedAt:     unixToTime(mc.CreatedAt),
		UpdatedAt:     unixToTime(mc.UpdatedAt),
	}
}

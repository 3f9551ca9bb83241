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

const genresCollection = "genres"

type MongoGenreRepository struct {
	coll *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *MongoGenreRepository {
	return &MongoGenreRepository{coll: db.Collection(genresCollection)}
}

type mongoGenre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Slug string             `bson:"slug"`
}

func (r *MongoGenreRepository) Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	res, err := r.coll.InsertOne(ctx, mongoGenre{Name: genre.Name, Slug: genre.Slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGenreExists
		}
		return nil, fmt.Errorf("insert genre: %w", err)
	}

	clone := *genre
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone.ID = oid.Hex()
	}
	return &clone, nil
}

func (r *MongoGenreRepository) FindByID(ctx context.Context, id string) (*domain.Genre, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGenreNotFound
	}

	var mg mongoGenre
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *MongoGenreRepository) List(ctx context.Context) ([]*domain.Genre, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *MongoGenreRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Genre, error) {
	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}
	return r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
}

func (r *MongoGenreRepository) Update(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	oid, err := primitive.ObjectIDFromHex(genre.ID)
	if err != nil {
		return nil, domain.ErrGenreNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"name": genre.Name, "slug": genre.Slug},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrGenreExists
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGenreNotFound
	}

	clone := *genre
	return &clone, nil
}

func (r *MongoGenreRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGenreNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGenreNotFound
	}
	return nil
}

func (r *MongoGenreRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Genre, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Genre
	for cursor.Next(ctx) {
		var mg mongoGenre
		if err := cursor.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode genre: %w", err)
		}
		out = append(out, mg.toDomain())
	}
	return out, cursor.Err()
}

func (mg *mongoGenre) toDomain() *domain.Genre {
	return &domain.Genre{ID: mg.ID.Hex(), Name: mg.Name, Slug: mg.Slug}
}

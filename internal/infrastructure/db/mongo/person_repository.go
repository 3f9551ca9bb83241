package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const personsCollection = "persons"

type MongoPersonRepository struct {
	coll *mongo.Collection
}

func NewPersonRepository(db *mongo.Database) *MongoPersonRepository {
	return &MongoPersonRepository{coll: db.Collection(personsCollection)}
}

type mongoPerson struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FullName  string             `bson:"full_name"`
	PhotoURL  string             `bson:"photo_url,omitempty"`
	Biography string             `bson:"biography,omitempty"`
	BirthDate *int64             `bson:"birth_date,omitempty"`
	DeathDate *int64             `bson:"death_date,omitempty"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoPersonRepository) Create(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	res, err := r.coll.InsertOne(ctx, toMongoPerson(person))
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}

	clone := *person
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone.ID = oid.Hex()
	}
	return &clone, nil
}

func (r *MongoPersonRepository) FindByID(ctx context.Context, id string) (*domain.Person, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPersonNotFound
	}

	var mp mongoPerson
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPersonRepository) FindByName(ctx context.Context, fullName string) (*domain.Person, error) {
	var mp mongoPerson
	if err := r.coll.FindOne(ctx, bson.M{"full_name": fullName}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person by name: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPersonRepository) List(ctx context.Context) ([]*domain.Person, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"full_name": 1}))
}

func (r *MongoPersonRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Person, error) {
	filter := bson.M{"full_name": bson.M{"$regex": query, "$options": "i"}}
	opts := options.Find().SetSort(bson.M{"full_name": 1}).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *MongoPersonRepository) Update(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	oid, err := primitive.ObjectIDFromHex(person.ID)
	if err != nil {
		return nil, domain.ErrPersonNotFound
	}

	mp := toMongoPerson(person)
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"full_name":  mp.FullName,
		"photo_url":  mp.PhotoURL,
		"biography":  mp.Biography,
		"birth_date": mp.BirthDate,
		"death_date": mp.DeathDate,
		"updated_at": mp.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPersonNotFound
	}

	clone := *person
	return &clone, nil
}

func (r *MongoPersonRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPersonNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *MongoPersonRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Person, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find persons: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Person
	for cursor.Next(ctx) {
		var mp mongoPerson
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode person: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	return out, cursor.Err()
}

func toMongoPerson(person *domain.Person) mongoPerson {
	return mongoPerson{
		FullName:  person.FullName,
		PhotoURL:  person.PhotoURL,
		Biography: person.Biography,
		BirthDate: timePtrToUnix(person.BirthDate),
		DeathDate: timePtrToUnix(person.DeathDate),
		CreatedAt: person.CreatedAt.Unix(),
		UpdatedAt: person.UpdatedAt.Unix(),
	}
}

func (mp *mongoPerson) toDomain() *domain.Person {
	return &domain.Person{
		ID:        mp.ID.Hex(),
		FullName:  mp.FullName,
		PhotoURL:  mp.PhotoURL,
		Biography: mp.Biography,
		BirthDate: unixToTimePtr(mp.BirthDate),
		DeathDate: unixToTimePtr(mp.DeathDate),
		CreatedAt: unixToTime(mp.CreatedAt),
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}
}

func timePtrToUnix(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}

func unixToTimePtr(u *int64) *time.Time {
	if u == nil {
		return nil
	}
	t := unixToTime(*u)
	return &t
}

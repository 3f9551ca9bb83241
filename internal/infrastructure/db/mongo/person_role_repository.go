package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const personRolesCollection = "person_roles"

type MongoPersonRoleRepository struct {
	coll *mongo.Collection
}

func NewPersonRoleRepository(db *mongo.Database) *MongoPersonRoleRepository {
	return &MongoPersonRoleRepository{coll: db.Collection(personRolesCollection)}
}

type mongoPersonRole struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *MongoPersonRoleRepository) Create(ctx context.Context, role *domain.PersonRole) (*domain.PersonRole, error) {
	res, err := r.coll.InsertOne(ctx, mongoPersonRole{Name: role.Name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPersonRoleExists
		}
		return nil, fmt.Errorf("insert person role: %w", err)
	}

	clone := *role
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone.ID = oid.Hex()
	}
	return &clone, nil
}

func (r *MongoPersonRoleRepository) FindByID(ctx context.Context, id string) (*domain.PersonRole, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPersonRoleNotFound
	}

	var mr mongoPersonRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPersonRoleNotFound
		}
		return nil, fmt.Errorf("find person role: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoPersonRoleRepository) List(ctx context.Context) ([]*domain.PersonRole, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find person roles: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.PersonRole
	for cursor.Next(ctx) {
		var mr mongoPersonRole
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode person role: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	return out, cursor.Err()
}

func (r *MongoPersonRoleRepository) Update(ctx context.Context, role *domain.PersonRole) (*domain.PersonRole, error) {
	oid, err := primitive.ObjectIDFromHex(role.ID)
	if err != nil {
		return nil, domain.ErrPersonRoleNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"name": role.Name},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPersonRoleExists
		}
		return nil, fmt.Errorf("update person role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPersonRoleNotFound
	}

	clone := *role
	return &clone, nil
}

func (r *MongoPersonRoleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPersonRoleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete person role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPersonRoleNotFound
	}
	return nil
}

func (mr *mongoPersonRole) toDomain() *domain.PersonRole {
	return &domain.PersonRole{ID: mr.ID.Hex(), Name: mr.Name}
}

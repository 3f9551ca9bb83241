package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const creditsCollection = "content_persons"

type MongoCreditRepository struct {
	coll *mongo.Collection
}

func NewCreditRepository(db *mongo.Database) *MongoCreditRepository {
	return &MongoCreditRepository{coll: db.Collection(creditsCollection)}
}

type mongoCredit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ContentID string             `bson:"content_id"`
	PersonID  string             `bson:"person_id"`
	RoleID    string             `bson:"role_id"`
}

// Replace swaps the credit set of a content entry: old rows go, new rows
// come in one pass. An empty set just clears the credits.
func (r *MongoCreditRepository) Replace(ctx context.Context, contentID string, credits []*domain.Credit) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"content_id": contentID}); err != nil {
		return fmt.Errorf("clear credits: %w", err)
	}
	if len(credits) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(credits))
	for _, credit := range credits {
		docs = append(docs, mongoCredit{
			ContentID: contentID,
			PersonID:  credit.PersonID,
			RoleID:    credit.RoleID,
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert credits: %w", err)
	}
	return nil
}

func (r *MongoCreditRepository) ListByContent(ctx context.Context, contentID string) ([]*domain.Credit, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"content_id": contentID})
	if err != nil {
		return nil, fmt.Errorf("find credits: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Credit
	for cursor.Next(ctx) {
		var mc mongoCredit
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode credit: %w", err)
		}
		out = append(out, mc.toDomain())
	}
	return out, cursor.Err()
}

func (r *MongoCreditRepository) CountByPerson(ctx context.Context, personID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"person_id": personID})
	if err != nil {
		return 0, fmt.Errorf("count credits: %w", err)
	}
	return n, nil
}

func (r *MongoCreditRepository) DeleteByContent(ctx context.Context, contentID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"content_id": contentID}); err != nil {
		return fmt.Errorf("delete credits: %w", err)
	}
	return nil
}

func (mc *mongoCredit) toDomain() *domain.Credit {
	return &domain.Credit{
		ID:        mc.ID.Hex(),
		ContentID: mc.ContentID,
		PersonID:  mc.PersonID,
		RoleID:    mc.RoleID,
	}
}

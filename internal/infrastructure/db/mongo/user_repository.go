package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Email               string             `bson:"email"`
	Username            string             `bson:"username"`
	TelegramID          string             `bson:"telegram_id,omitempty"`
	PasswordHash        string             `bson:"password_hash"`
	Role                string             `bson:"role"`
	EmailVerified       bool               `bson:"email_verified"`
	EmailVerifyToken    string             `bson:"email_verify_token,omitempty"`
	EmailTokenExpiresAt int64              `bson:"email_token_expires_at,omitempty"`
	AvatarURL           string             `bson:"avatar_url,omitempty"`
	Bio                 string             `bson:"bio,omitempty"`
	CreatedAt           int64              `bson:"created_at"`
	UpdatedAt           int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Email:            user.Email,
		Username:         user.Username,
		TelegramID:       user.TelegramID,
		PasswordHash:     user.PasswordHash,
		Role:             user.Role,
		EmailVerified:    user.EmailVerified,
		EmailVerifyToken: user.EmailVerifyToken,
		CreatedAt:        user.CreatedAt.Unix(),
		UpdatedAt:        user.UpdatedAt.Unix(),
		AvatarURL:        user.AvatarURL,
		Bio:              user.Bio,
	}
	if !user.EmailTokenExpiresAt.IsZero() {
		doc.EmailTokenExpiresAt = user.EmailTokenExpiresAt.Unix()
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// Losing the race against a concurrent registration lands here.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clone := *user
		clone.ID = oid.Hex()
		created = &clone
	}
	return created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByTelegramID(ctx context.Context, telegramID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"telegram_id": telegramID})
}

func (r *MongoUserRepository) FindByVerifyToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"email_verify_token":     token,
		"email_token_expires_at": bson.M{"$gt": now.Unix()},
	})
}

func (r *MongoUserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":   bson.M{"email_verified": true, "updated_at": time.Now().Unix()},
		"$unset": bson.M{"email_verify_token": "", "email_token_expires_at": ""},
	})
	if err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetVerifyToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"email_verify_token":     token,
			"email_token_expires_at": expiresAt.Unix(),
			"updated_at":             time.Now().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("set verify token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().Unix()}
	if update.Username != "" {
		set["username"] = update.Username
	}
	if update.Bio != "" {
		set["bio"] = update.Bio
	}
	if update.TelegramID != "" {
		set["telegram_id"] = update.TelegramID
	}
	if update.SetAvatar {
		set["avatar_url"] = update.AvatarURL
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().Unix()},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  mu.ID.Hex(),
		Email:               mu.Email,
		Username:            mu.Username,
		TelegramID:          mu.TelegramID,
		PasswordHash:        mu.PasswordHash,
		Role:                mu.Role,
		EmailVerified:       mu.EmailVerified,
		EmailVerifyToken:    mu.EmailVerifyToken,
		EmailTokenExpiresAt: unixToTime(mu.EmailTokenExpiresAt),
		AvatarURL:           mu.AvatarURL,
		Bio:                 mu.Bio,
		CreatedAt:           unixToTime(mu.CreatedAt),
		UpdatedAt:           unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

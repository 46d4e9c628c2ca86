package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// TokenRepository defines the interface for one-time auth tokens
// (email verification and password reset).
type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByToken(ctx context.Context, token string, purpose models.TokenPurpose) (*models.AuthToken, error)
	MarkUsed(ctx context.Context, id primitive.ObjectID) error
	InvalidateForUser(ctx context.Context, userID primitive.ObjectID, purpose models.TokenPurpose) error
}

// ResendAttemptRepository defines the interface for email-resend throttling
type ResendAttemptRepository interface {
	Find(ctx context.Context, email string, purpose models.TokenPurpose) (*models.ResendAttempt, error)
	Save(ctx context.Context, attempt *models.ResendAttempt) error
}

// MongoTokenRepository implements TokenRepository for MongoDB
type MongoTokenRepository struct {
	collection *mongo.Collection
}

// NewMongoTokenRepository creates a new MongoTokenRepository
func NewMongoTokenRepository(db *mongo.Database) *MongoTokenRepository {
	return &MongoTokenRepository{collection: db.Collection("resettokens")}
}

func (r *MongoTokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, token)
	return err
}

func (r *MongoTokenRepository) FindByToken(ctx context.Context, token string, purpose models.TokenPurpose) (*models.AuthToken, error) {
	var record models.AuthToken
	err := r.collection.FindOne(ctx, bson.M{"token": token, "purpose": purpose}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *MongoTokenRepository) MarkUsed(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"usedAt": time.Now()}})
	return err
}

// InvalidateForUser burns any outstanding tokens of the given purpose, so a
// freshly issued one is the only redeemable token.
func (r *MongoTokenRepository) InvalidateForUser(ctx context.Context, userID primitive.ObjectID, purpose models.TokenPurpose) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "purpose": purpose, "usedAt": nil},
		bson.M{"$set": bson.M{"usedAt": time.Now()}},
	)
	return err
}

// MongoResendAttemptRepository implements ResendAttemptRepository for MongoDB
type MongoResendAttemptRepository struct {
	collection *mongo.Collection
}

// NewMongoResendAttemptRepository creates a new MongoResendAttemptRepository
func NewMongoResendAttemptRepository(db *mongo.Database) *MongoResendAttemptRepository {
	return &MongoResendAttemptRepository{collection: db.Collection("resendattempts")}
}

func (r *MongoResendAttemptRepository) Find(ctx context.Context, email string, purpose models.TokenPurpose) (*models.ResendAttempt, error) {
	var attempt models.ResendAttempt
	err := r.collection.FindOne(ctx, bson.M{"email": email, "purpose": purpose}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *MongoResendAttemptRepository) Save(ctx context.Context, attempt *models.ResendAttempt) error {
	attempt.UpdatedAt = time.Now()
	if attempt.ID.IsZero() {
		attempt.ID = primitive.NewObjectID()
		_, err := r.collection.InsertOne(ctx, attempt)
		return err
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": attempt.ID}, bson.M{"$set": bson.M{
		"count":       attempt.Count,
		"windowStart": attempt.WindowStart,
		"updatedAt":   attempt.UpdatedAt,
	}})
	return err
}

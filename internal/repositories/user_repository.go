package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// UserRepository defines the interface for user data operations.
// Find methods return (nil, nil) when no live document matches; callers
// translate that into their own not-found errors.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetEmailVerified(ctx context.Context, id primitive.ObjectID) error
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	ListVerifiedIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	filter["$and"] = bson.A{models.NotDeleted()}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"firstName":         user.FirstName,
		"middleName":        user.MiddleName,
		"lastName":          user.LastName,
		"profilePictureUrl": user.ProfilePictureURL,
		"bio":               user.Bio,
		"updatedAt":         user.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	return err
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *MongoUserRepository) SetEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isEmailVerified": true,
		"updatedAt":       time.Now(),
	}})
	return err
}

func (r *MongoUserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":      role,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *MongoUserRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"deletedAt": now,
		"updatedAt": now,
	}})
	return err
}

// ListVerifiedIDs returns the IDs of all live, email-verified accounts.
// Used by the announcement fan-out.
func (r *MongoUserRepository) ListVerifiedIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	filter := bson.M{"isEmailVerified": true, "$and": bson.A{models.NotDeleted()}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

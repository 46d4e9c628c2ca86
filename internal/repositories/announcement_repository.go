package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kulinarya/backend/internal/models"
)

// AnnouncementRepository defines the interface for announcement operations
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page models.PageQuery) ([]models.Announcement, error)
}

// MongoAnnouncementRepository implements AnnouncementRepository for MongoDB
type MongoAnnouncementRepository struct {
	collection *mongo.Collection
}

// NewMongoAnnouncementRepository creates a new MongoAnnouncementRepository
func NewMongoAnnouncementRepository(db *mongo.Database) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{collection: db.Collection("announcements")}
}

func (r *MongoAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = primitive.NewObjectID()
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = announcement.CreatedAt
	_, err := r.collection.InsertOne(ctx, announcement)
	return err
}

func (r *MongoAnnouncementRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	filter := bson.M{"_id": id, "$and": bson.A{models.NotDeleted()}}

	var announcement models.Announcement
	err := r.collection.FindOne(ctx, filter).Decode(&announcement)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *MongoAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	announcement.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":     announcement.Title,
		"content":   announcement.Content,
		"updatedAt": announcement.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": announcement.ID}, update)
	return err
}

func (r *MongoAnnouncementRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"deletedAt": now,
		"updatedAt": now,
	}})
	return err
}

func (r *MongoAnnouncementRepository) List(ctx context.Context, page models.PageQuery) ([]models.Announcement, error) {
	page = page.Clamped()
	filter := bson.M{"$and": bson.A{models.NotDeleted()}}
	if page.Cursor != nil {
		filter["createdAt"] = bson.M{"$lt": *page.Cursor}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(page.Limit)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

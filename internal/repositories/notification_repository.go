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

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	// FindByKey looks up the notification matching the idempotency key
	// (forUser, fromPost, type), including a soft-deleted one so the
	// upsert can restore it.
	FindByKey(ctx context.Context, forUser, fromPost primitive.ObjectID, typ models.NotificationType) (*models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	CreateMany(ctx context.Context, notifications []models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, page models.PageQuery) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error)
	MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error
	SoftDelete(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error)
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) FindByKey(ctx context.Context, forUser, fromPost primitive.ObjectID, typ models.NotificationType) (*models.Notification, error) {
	filter := bson.M{"forUser": forUser, "fromPost": fromPost, "type": typ}

	var notification models.Notification
	err := r.collection.FindOne(ctx, filter).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *MongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = notification.CreatedAt
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *MongoNotificationRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(notifications))
	for i := range notifications {
		notifications[i].ID = primitive.NewObjectID()
		notifications[i].CreatedAt = now
		notifications[i].UpdatedAt = now
		docs[i] = notifications[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Update writes the collapse-relevant state of the record: content, actor,
// read flag and deletedAt together.
func (r *MongoNotificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	notification.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"content":   notification.Content,
		"byUser":    notification.ByUser,
		"isRead":    notification.IsRead,
		"deletedAt": notification.DeletedAt,
		"updatedAt": notification.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": notification.ID}, update)
	return err
}

func (r *MongoNotificationRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, page models.PageQuery) ([]models.Notification, error) {
	page = page.Clamped()
	filter := bson.M{"forUser": recipientID, "$and": bson.A{models.NotDeleted()}}
	if page.Cursor != nil {
		filter["updatedAt"] = bson.M{"$lt": *page.Cursor}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(page.Limit)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	filter := bson.M{"forUser": recipientID, "isRead": false, "$and": bson.A{models.NotDeleted()}}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "forUser": recipientID},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoNotificationRepository) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"forUser": recipientID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}},
	)
	return err
}

func (r *MongoNotificationRepository) SoftDelete(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "forUser": recipientID},
		bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

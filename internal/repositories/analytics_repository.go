package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// PlatformVisitRepository defines the interface for platform-visit counters
type PlatformVisitRepository interface {
	// FindSince returns the viewer's most recent visit created at or after
	// the given time; (nil, nil) when there is none.
	FindSince(ctx context.Context, viewer models.Viewer, since time.Time) (*models.PlatformVisit, error)
	Create(ctx context.Context, visit *models.PlatformVisit) error
	Summary(ctx context.Context, from, to time.Time) (models.VisitSummary, error)
}

// PostViewRepository defines the interface for per-recipe view counters
type PostViewRepository interface {
	FindSince(ctx context.Context, postID primitive.ObjectID, viewer models.Viewer, since time.Time) (*models.PostView, error)
	Create(ctx context.Context, view *models.PostView) error
	CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

func viewerFilter(viewer models.Viewer) bson.M {
	if viewer.UserID != nil {
		return bson.M{"byUser": *viewer.UserID}
	}
	return bson.M{"byGuest": viewer.GuestKey}
}

// MongoPlatformVisitRepository implements PlatformVisitRepository for MongoDB
type MongoPlatformVisitRepository struct {
	collection *mongo.Collection
}

// NewMongoPlatformVisitRepository creates a new MongoPlatformVisitRepository
func NewMongoPlatformVisitRepository(db *mongo.Database) *MongoPlatformVisitRepository {
	return &MongoPlatformVisitRepository{collection: db.Collection("platformvisits")}
}

func (r *MongoPlatformVisitRepository) FindSince(ctx context.Context, viewer models.Viewer, since time.Time) (*models.PlatformVisit, error) {
	filter := viewerFilter(viewer)
	filter["createdAt"] = bson.M{"$gte": since}

	var visit models.PlatformVisit
	err := r.collection.FindOne(ctx, filter).Decode(&visit)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *MongoPlatformVisitRepository) Create(ctx context.Context, visit *models.PlatformVisit) error {
	visit.ID = primitive.NewObjectID()
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = visit.CreatedAt
	_, err := r.collection.InsertOne(ctx, visit)
	return err
}

func (r *MongoPlatformVisitRepository) Summary(ctx context.Context, from, to time.Time) (models.VisitSummary, error) {
	var summary models.VisitSummary
	rangeFilter := bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}

	total, err := r.collection.CountDocuments(ctx, rangeFilter)
	if err != nil {
		return summary, err
	}
	userVisits, err := r.collection.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": from, "$lt": to},
		"visitType": models.VisitUser,
	})
	if err != nil {
		return summary, err
	}

	summary.TotalVisits = total
	summary.UserVisits = userVisits
	summary.GuestVisits = total - userVisits
	return summary, nil
}

// MongoPostViewRepository implements PostViewRepository for MongoDB
type MongoPostViewRepository struct {
	collection *mongo.Collection
}

// NewMongoPostViewRepository creates a new MongoPostViewRepository
func NewMongoPostViewRepository(db *mongo.Database) *MongoPostViewRepository {
	return &MongoPostViewRepository{collection: db.Collection("postviews")}
}

func (r *MongoPostViewRepository) FindSince(ctx context.Context, postID primitive.ObjectID, viewer models.Viewer, since time.Time) (*models.PostView, error) {
	filter := viewerFilter(viewer)
	filter["fromPost"] = postID
	filter["createdAt"] = bson.M{"$gte": since}

	var view models.PostView
	err := r.collection.FindOne(ctx, filter).Decode(&view)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *MongoPostViewRepository) Create(ctx context.Context, view *models.PostView) error {
	view.ID = primitive.NewObjectID()
	view.CreatedAt = time.Now()
	view.UpdatedAt = view.CreatedAt
	_, err := r.collection.InsertOne(ctx, view)
	return err
}

func (r *MongoPostViewRepository) CountByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"fromPost": postID})
}

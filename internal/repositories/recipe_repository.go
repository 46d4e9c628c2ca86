package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/models"
)

// RecipeRepository defines the interface for recipe data operations,
// including the read-side engagement aggregations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	DetailByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeWithEngagement, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	SetModeration(ctx context.Context, recipeID, moderationID primitive.ObjectID) error
	UpdateStatus(ctx context.Context, recipeID primitive.ObjectID, status models.ModerationStatus) error
	SetFeatured(ctx context.Context, recipeID primitive.ObjectID, featured bool) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	ListApproved(ctx context.Context, q models.RecipeListQuery) ([]models.RecipeWithEngagement, error)
	ListByStatus(ctx context.Context, status models.ModerationStatus, page models.PageQuery) ([]models.RecipeWithEngagement, error)
	ListFeatured(ctx context.Context, page models.PageQuery) ([]models.RecipeWithEngagement, error)
	TopEngaged(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error)
	TopReacted(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error)
	TopViewed(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error)
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

func (r *MongoRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	recipe.Status = models.StatusPending
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

func (r *MongoRecipeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	filter := bson.M{"_id": id, "$and": bson.A{models.NotDeleted()}}

	var recipe models.Recipe
	err := r.collection.FindOne(ctx, filter).Decode(&recipe)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *MongoRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	recipe.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":          recipe.Title,
		"foodCategory":   recipe.FoodCategory,
		"originProvince": recipe.OriginProvince,
		"pictureUrl":     recipe.PictureURL,
		"videoUrl":       recipe.VideoURL,
		"description":    recipe.Description,
		"ingredients":    recipe.Ingredients,
		"procedure":      recipe.Procedure,
		"status":         recipe.Status,
		"updatedAt":      recipe.UpdatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipe.ID}, update)
	return err
}

func (r *MongoRecipeRepository) SetModeration(ctx context.Context, recipeID, moderationID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, bson.M{"$set": bson.M{
		"moderationInfo": moderationID,
		"updatedAt":      time.Now(),
	}})
	return err
}

// UpdateStatus writes the recipe's status mirror field. Always paired with
// the corresponding write on the moderation record.
func (r *MongoRecipeRepository) UpdateStatus(ctx context.Context, recipeID primitive.ObjectID, status models.ModerationStatus) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	return err
}

func (r *MongoRecipeRepository) SetFeatured(ctx context.Context, recipeID primitive.ObjectID, featured bool) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, bson.M{"$set": bson.M{
		"isFeatured": featured,
		"updatedAt":  time.Now(),
	}})
	return err
}

func (r *MongoRecipeRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"deletedAt": now,
		"updatedAt": now,
	}})
	return err
}

func (r *MongoRecipeRepository) DetailByID(ctx context.Context, id primitive.ObjectID) (*models.RecipeWithEngagement, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"_id": id, "$and": bson.A{models.NotDeleted()}}},
	}
	pipeline = append(pipeline, authorLookupStages()...)
	pipeline = append(pipeline, engagementStages(time.Time{})...)
	pipeline = append(pipeline, commentPreviewStage())

	results, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *MongoRecipeRepository) ListApproved(ctx context.Context, q models.RecipeListQuery) ([]models.RecipeWithEngagement, error) {
	page := q.Page.Clamped()
	match := bson.M{"status": models.StatusApproved, "$and": bson.A{models.NotDeleted()}}
	if q.FoodCategory != "" {
		match["foodCategory"] = q.FoodCategory
	}
	if q.OriginProvince != "" {
		match["originProvince"] = q.OriginProvince
	}
	if q.Search != "" {
		match["title"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	if page.Cursor != nil {
		match["createdAt"] = bson.M{"$lt": *page.Cursor}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
		{"$limit": page.Limit},
	}
	pipeline = append(pipeline, authorLookupStages()...)
	pipeline = append(pipeline, engagementStages(time.Time{})...)
	pipeline = append(pipeline, commentPreviewStage())

	return r.aggregate(ctx, pipeline)
}

func (r *MongoRecipeRepository) ListByStatus(ctx context.Context, status models.ModerationStatus, page models.PageQuery) ([]models.RecipeWithEngagement, error) {
	page = page.Clamped()
	match := bson.M{"status": status, "$and": bson.A{models.NotDeleted()}}
	if page.Cursor != nil {
		match["createdAt"] = bson.M{"$lt": *page.Cursor}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
		{"$limit": page.Limit},
	}
	pipeline = append(pipeline, authorLookupStages()...)
	pipeline = append(pipeline, moderationLookupStages()...)

	return r.aggregate(ctx, pipeline)
}

func (r *MongoRecipeRepository) ListFeatured(ctx context.Context, page models.PageQuery) ([]models.RecipeWithEngagement, error) {
	page = page.Clamped()
	match := bson.M{
		"isFeatured": true,
		"status":     models.StatusApproved,
		"$and":       bson.A{models.NotDeleted()},
	}
	if page.Cursor != nil {
		match["createdAt"] = bson.M{"$lt": *page.Cursor}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.M{"createdAt": -1}},
		{"$limit": page.Limit},
	}
	pipeline = append(pipeline, authorLookupStages()...)
	pipeline = append(pipeline, engagementStages(time.Time{})...)

	return r.aggregate(ctx, pipeline)
}

func (r *MongoRecipeRepository) TopEngaged(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error) {
	return r.leaderboard(ctx, since, limit, "totalEngagement")
}

func (r *MongoRecipeRepository) TopReacted(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error) {
	return r.leaderboard(ctx, since, limit, "totalReactions")
}

func (r *MongoRecipeRepository) TopViewed(ctx context.Context, since time.Time, limit int64) ([]models.RecipeWithEngagement, error) {
	return r.leaderboard(ctx, since, limit, "totalViews")
}

// leaderboard ranks approved recipes by an engagement counter computed over
// events since the given time.
func (r *MongoRecipeRepository) leaderboard(ctx context.Context, since time.Time, limit int64, sortKey string) ([]models.RecipeWithEngagement, error) {
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}

	pipeline := []bson.M{
		{"$match": bson.M{"status": models.StatusApproved, "$and": bson.A{models.NotDeleted()}}},
	}
	pipeline = append(pipeline, authorLookupStages()...)
	pipeline = append(pipeline, engagementStages(since)...)
	pipeline = append(pipeline,
		bson.M{"$sort": bson.M{sortKey: -1, "createdAt": -1}},
		bson.M{"$limit": limit},
	)

	return r.aggregate(ctx, pipeline)
}

func (r *MongoRecipeRepository) aggregate(ctx context.Context, pipeline []bson.M) ([]models.RecipeWithEngagement, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.RecipeWithEngagement
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// authorLookupStages joins the authoring user's display fields as "author".
func authorLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from": "users",
			"let":  bson.M{"userId": "$byUser"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$userId"}}}},
				{"$project": bson.M{
					"firstName":         1,
					"middleName":        1,
					"lastName":          1,
					"profilePictureUrl": 1,
					"bio":               1,
				}},
			},
			"as": "author",
		}},
		{"$unwind": bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}},
	}
}

// moderationLookupStages joins the companion moderation record's status and
// notes as "moderation". Used on moderator-facing listings.
func moderationLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from": "moderations",
			"let":  bson.M{"moderationId": "$moderationInfo"},
			"pipeline": []bson.M{
				{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$moderationId"}}}},
				{"$project": bson.M{"status": 1, "notes": 1}},
			},
			"as": "moderation",
		}},
		{"$unwind": bson.M{"path": "$moderation", "preserveNullAndEmptyArrays": true}},
	}
}

// engagementStages joins per-kind reaction counts, comment and view totals
// and derives totalEngagement. A non-zero since restricts the counted
// events to those created at or after it (leaderboard windows).
func engagementStages(since time.Time) []bson.M {
	reactionMatch := []bson.M{
		{"$match": bson.M{
			"$expr":     bson.M{"$eq": bson.A{"$fromPost", "$$recipeId"}},
			"reaction":  bson.M{"$in": bson.A{models.ReactionHeart, models.ReactionDrool, models.ReactionNeutral}},
			"deletedAt": nil,
		}},
		{"$project": bson.M{"reaction": 1}},
	}
	commentMatch := []bson.M{
		{"$match": bson.M{
			"$expr": bson.M{"$eq": bson.A{"$fromPost", "$$recipeId"}},
			"$or":   bson.A{bson.M{"deletedAt": nil}, bson.M{"deletedAt": bson.M{"$exists": false}}},
		}},
		{"$project": bson.M{"_id": 1}},
	}
	viewMatch := []bson.M{
		{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$fromPost", "$$recipeId"}}}},
		{"$project": bson.M{"_id": 1}},
	}
	if !since.IsZero() {
		window := bson.M{"createdAt": bson.M{"$gte": since}}
		reactionMatch = append([]bson.M{{"$match": window}}, reactionMatch...)
		commentMatch = append([]bson.M{{"$match": window}}, commentMatch...)
		viewMatch = append([]bson.M{{"$match": window}}, viewMatch...)
	}

	countOf := func(kind models.ReactionKind) bson.M {
		return bson.M{"$size": bson.M{"$filter": bson.M{
			"input": "$reactionData",
			"as":    "r",
			"cond":  bson.M{"$eq": bson.A{"$$r.reaction", kind}},
		}}}
	}

	return []bson.M{
		{"$lookup": bson.M{
			"from":     "reactions",
			"let":      bson.M{"recipeId": "$_id"},
			"pipeline": reactionMatch,
			"as":       "reactionData",
		}},
		{"$lookup": bson.M{
			"from":     "comments",
			"let":      bson.M{"recipeId": "$_id"},
			"pipeline": commentMatch,
			"as":       "commentData",
		}},
		{"$lookup": bson.M{
			"from":     "postviews",
			"let":      bson.M{"recipeId": "$_id"},
			"pipeline": viewMatch,
			"as":       "viewData",
		}},
		{"$set": bson.M{
			"heartCount":     countOf(models.ReactionHeart),
			"droolCount":     countOf(models.ReactionDrool),
			"neutralCount":   countOf(models.ReactionNeutral),
			"totalReactions": bson.M{"$size": "$reactionData"},
			"totalComments":  bson.M{"$size": "$commentData"},
			"totalViews":     bson.M{"$size": "$viewData"},
		}},
		{"$set": bson.M{
			"totalEngagement": bson.M{"$add": bson.A{"$totalReactions", "$totalComments", "$totalViews"}},
		}},
		{"$unset": bson.A{"reactionData", "commentData", "viewData"}},
	}
}

// commentPreviewStage joins the latest three live comments with their
// authors' display fields.
func commentPreviewStage() bson.M {
	return bson.M{"$lookup": bson.M{
		"from": "comments",
		"let":  bson.M{"recipeId": "$_id"},
		"pipeline": []bson.M{
			{"$match": bson.M{
				"$expr": bson.M{"$eq": bson.A{"$fromPost", "$$recipeId"}},
				"$or":   bson.A{bson.M{"deletedAt": nil}, bson.M{"deletedAt": bson.M{"$exists": false}}},
			}},
			{"$sort": bson.M{"createdAt": -1}},
			{"$limit": 3},
			{"$lookup": bson.M{
				"from": "users",
				"let":  bson.M{"userId": "$byUser"},
				"pipeline": []bson.M{
					{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$userId"}}}},
					{"$project": bson.M{
						"firstName":         1,
						"middleName":        1,
						"lastName":          1,
						"profilePictureUrl": 1,
					}},
				},
				"as": "byUser",
			}},
			{"$unwind": bson.M{"path": "$byUser", "preserveNullAndEmptyArrays": true}},
			{"$project": bson.M{"_id": 1, "content": 1, "createdAt": 1, "byUser": 1}},
		},
		"as": "commentsPreview",
	}}
}

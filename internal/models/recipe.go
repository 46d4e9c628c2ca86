package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodCategory classifies a recipe.
type FoodCategory string

const (
	CategoryDishes   FoodCategory = "dishes"
	CategorySoup     FoodCategory = "soup"
	CategoryDrinks   FoodCategory = "drinks"
	CategoryDesserts FoodCategory = "desserts"
	CategoryPastries FoodCategory = "pastries"
)

// Ingredient is one entry of a recipe's structured ingredient list.
type Ingredient struct {
	Quantity string `json:"quantity" bson:"quantity" validate:"required,max=30"`
	Unit     string `json:"unit,omitempty" bson:"unit,omitempty" validate:"omitempty,max=30"`
	Name     string `json:"name" bson:"name" validate:"required,max=100"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=200"`
}

// Step is one ordered entry of a recipe's procedure.
type Step struct {
	StepNumber int    `json:"stepNumber" bson:"stepNumber" validate:"required,min=1"`
	Content    string `json:"content" bson:"content" validate:"required,max=1000"`
}

// Recipe represents a recipe document in the "recipes" collection.
//
// Status mirrors the status of the Moderation record referenced by
// ModerationID; the two are denormalized copies of the same fact and are
// always written together.
type Recipe struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	ByUser         primitive.ObjectID  `json:"byUser" bson:"byUser"`
	Title          string              `json:"title" bson:"title"`
	FoodCategory   FoodCategory        `json:"foodCategory" bson:"foodCategory"`
	OriginProvince string              `json:"originProvince" bson:"originProvince"`
	PictureURL     string              `json:"pictureUrl,omitempty" bson:"pictureUrl,omitempty"`
	VideoURL       string              `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	Description    string              `json:"description,omitempty" bson:"description,omitempty"`
	Ingredients    []Ingredient        `json:"ingredients" bson:"ingredients"`
	Procedure      []Step              `json:"procedure" bson:"procedure"`
	ModerationID   *primitive.ObjectID `json:"moderationId,omitempty" bson:"moderationInfo,omitempty"`
	Status         ModerationStatus    `json:"status" bson:"status"`
	IsFeatured     bool                `json:"isFeatured" bson:"isFeatured"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
	DeletedAt      *time.Time          `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// CommentPreview is a trimmed comment joined into recipe list views.
type CommentPreview struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Content   string             `json:"content" bson:"content"`
	ByUser    AuthorPreview      `json:"byUser" bson:"byUser"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// RecipeWithEngagement is the aggregated read-side view of a recipe:
// author display fields, moderation status and engagement counters.
type RecipeWithEngagement struct {
	Recipe          `bson:",inline"`
	Author          AuthorPreview    `json:"author" bson:"author"`
	HeartCount      int64            `json:"heartCount" bson:"heartCount"`
	DroolCount      int64            `json:"droolCount" bson:"droolCount"`
	NeutralCount    int64            `json:"neutralCount" bson:"neutralCount"`
	TotalReactions  int64            `json:"totalReactions" bson:"totalReactions"`
	TotalComments   int64            `json:"totalComments" bson:"totalComments"`
	TotalViews      int64            `json:"totalViews" bson:"totalViews"`
	TotalEngagement int64            `json:"totalEngagement" bson:"totalEngagement"`
	CommentsPreview []CommentPreview `json:"commentsPreview,omitempty" bson:"commentsPreview,omitempty"`
}

// CreateRecipeRequest defines the request body for creating a recipe
type CreateRecipeRequest struct {
	Title          string       `json:"title" validate:"required,min=3,max=150"`
	FoodCategory   FoodCategory `json:"foodCategory" validate:"required,oneof=dishes soup drinks desserts pastries"`
	OriginProvince string       `json:"originProvince" validate:"required,max=100"`
	PictureURL     string       `json:"pictureUrl,omitempty" validate:"omitempty,url"`
	VideoURL       string       `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Description    string       `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients    []Ingredient `json:"ingredients" validate:"required,min=1,dive"`
	Procedure      []Step       `json:"procedure" validate:"required,min=1,dive"`
}

// UpdateRecipeRequest defines the request body for updating a recipe.
// Fields are optional subsets of CreateRecipeRequest; any successful update
// resets the recipe's moderation to pending.
type UpdateRecipeRequest struct {
	Title          string       `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	FoodCategory   FoodCategory `json:"foodCategory,omitempty" validate:"omitempty,oneof=dishes soup drinks desserts pastries"`
	OriginProvince string       `json:"originProvince,omitempty" validate:"omitempty,max=100"`
	PictureURL     string       `json:"pictureUrl,omitempty" validate:"omitempty,url"`
	VideoURL       string       `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Description    string       `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients    []Ingredient `json:"ingredients,omitempty" validate:"omitempty,min=1,dive"`
	Procedure      []Step       `json:"procedure,omitempty" validate:"omitempty,min=1,dive"`
}

// RecipeListQuery carries the optional filters of the approved-recipe listing.
type RecipeListQuery struct {
	Page           PageQuery
	FoodCategory   FoodCategory
	OriginProvince string
	Search         string // matched against title
}

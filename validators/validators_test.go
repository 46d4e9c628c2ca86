package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := NewValidator()

	valid := models.RegisterRequest{
		Email:     "maria@example.com",
		Password:  "longenough",
		FirstName: "Maria",
		LastName:  "Santos",
	}
	assert.NoError(t, v.Validate(&valid))

	invalid := valid
	invalid.Email = "not-an-email"
	err := v.Validate(&invalid)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	short := valid
	short.Password = "short"
	assert.Error(t, v.Validate(&short))
}

func TestValidateModerateRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.ModerateRequest{Status: models.StatusApproved}))
	assert.Error(t, v.Validate(&models.ModerateRequest{Status: models.StatusPending}),
		"a decision cannot set the status back to pending")
	assert.Error(t, v.Validate(&models.ModerateRequest{}))
}

func TestValidateToggleReactionRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.ToggleReactionRequest{Reaction: models.ReactionHeart}))
	assert.Error(t, v.Validate(&models.ToggleReactionRequest{Reaction: "thumbs"}))
	assert.Error(t, v.Validate(&models.ToggleReactionRequest{}))
}

func TestValidateCreateRecipeRequest(t *testing.T) {
	v := NewValidator()

	valid := models.CreateRecipeRequest{
		Title:          "Chicken Adobo",
		FoodCategory:   models.CategoryDishes,
		OriginProvince: "Cavite",
		Ingredients:    []models.Ingredient{{Quantity: "1", Name: "chicken"}},
		Procedure:      []models.Step{{StepNumber: 1, Content: "Marinate."}},
	}
	assert.NoError(t, v.Validate(&valid))

	noIngredients := valid
	noIngredients.Ingredients = nil
	assert.Error(t, v.Validate(&noIngredients))

	badCategory := valid
	badCategory.FoodCategory = "fastfood"
	assert.Error(t, v.Validate(&badCategory))
}

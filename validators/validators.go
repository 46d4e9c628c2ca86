package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/kulinarya/backend/internal/apperrors"
)

// RequestValidator implements echo.Validator on top of go-playground's
// struct-tag validator so handlers can call c.Validate(req).
type RequestValidator struct {
	validate *validator.Validate
}

func NewValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.New(apperrors.CodeInvalidInput, "Validation Error", err)
	}
	return nil
}

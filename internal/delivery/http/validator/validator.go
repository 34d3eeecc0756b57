// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	validatorlib "github.com/go-playground/validator/v10"

	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
)

// CustomValidator wraps a shared validator instance for request structs.
type CustomValidator struct {
	validate *validatorlib.Validate
}

// New creates the Echo validator.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validatorlib.New(validatorlib.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags and maps failures onto the validation error the
// error handler already knows how to render.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidation.WithDetails(err.Error())
	}

	return nil
}

package httpserver

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/storefront/internal/service"
)

type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Failures wrap service.ErrValidation so
// they get the same treatment as service side checks.
func (rv *requestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		return fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/medinventory_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of req and converts the first failure
// into an apperrors.ValidationError.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(fe.Field(), "is required")
	case "min":
		return apperrors.NewValidationError(fe.Field(), "must be at least "+fe.Param())
	case "max":
		return apperrors.NewValidationError(fe.Field(), "must be at most "+fe.Param()+" characters")
	default:
		return apperrors.NewValidationError(fe.Field(), "failed "+fe.Tag()+" check")
	}
}

func requirePositivePrice(field string, price *decimal.Decimal) error {
	if price == nil {
		return apperrors.NewValidationError(field, "is required")
	}
	if !price.IsPositive() {
		return apperrors.NewValidationError(field, "must be greater than zero")
	}
	return nil
}

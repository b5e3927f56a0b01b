package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Harsha-bonthu/pt2/internal/apperror"
)

var validate = newValidator()

// newValidator reports fields by their json names so messages match the
// request payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and turns the first
// failure into a validation error.
func validateStruct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fieldErr := fieldErrs[0]
	field := fieldErr.Field()
	var message string
	switch fieldErr.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "email":
		message = fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fieldErr.Kind() == reflect.String {
			message = fmt.Sprintf("%s must not be blank", field)
		} else {
			message = fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param())
		}
	case "max":
		if fieldErr.Kind() == reflect.String {
			message = fmt.Sprintf("%s length must be at most %s", field, fieldErr.Param())
		} else {
			message = fmt.Sprintf("%s must be less than or equal to %s", field, fieldErr.Param())
		}
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}
	return apperror.New(apperror.CodeValidation, message)
}

func trimPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	return &value
}

// normalizeEmail lower-cases the domain part of an already validated
// address.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// nullable turns a nil pointer into an untyped nil so column updates write
// NULL instead of a typed nil pointer.
func nullable[T any](value *T) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func mapDatabaseError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.New(apperror.CodeConflict, "email already registered")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.New(apperror.CodeInvalidReference, "assigned employee not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "email already registered")
		}
		if pgErr.Code == "23503" {
			return apperror.New(apperror.CodeInvalidReference, "assigned employee not found")
		}
	}
	return err
}

package services

import (
	"ClinicHub/util"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateOnlyLayout = "2006-01-02"

var validate = newValidator()

var validationMessages = map[string]string{
	"required": "is required",
	"gte":      "must be greater than or equal to %s",
	"gt":       "must be greater than %s",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of: %s",
	"objectid": "must be a valid id",
	"date":     "must be a date in YYYY-MM-DD or RFC3339 format",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDate accepts a calendar date or a full RFC3339 timestamp. Calendar
// dates are read as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// IsDateOnly reports whether value is a bare calendar date.
func IsDateOnly(value string) bool {
	_, err := time.Parse(dateOnlyLayout, strings.TrimSpace(value))
	return err == nil
}

func parseID(value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil {
		return primitive.NilObjectID, util.ValidationError(util.INVALID_ID,
			util.FieldError{Field: "id", Message: validationMessages["objectid"]})
	}
	return id, nil
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return util.ValidationError(util.VALIDATION_FAILED)
	}
	details := make([]util.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, util.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return util.ValidationError(util.VALIDATION_FAILED, details...)
}

// fieldPath drops the struct name from the namespace, so nested fields read
// like items[0].quantity.
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := validationMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}

package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs tag-based validation and flattens the result
// into one operator-readable error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min", "gte":
			msgs = append(msgs, field+" must be at least "+fieldErr.Param())
		case "max", "lte":
			msgs = append(msgs, field+" must be at most "+fieldErr.Param())
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return fmt.Errorf("%s", strings.Join(msgs, ", "))
}

package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// BindAndValidate binds the request body to the given struct and validates it.
// Returns an error message suitable for the client, or "" if valid.
func BindAndValidate(c *gin.Context, obj interface{}) string {
	if err := c.ShouldBindJSON(obj); err != nil {
		return "Invalid request body: " + err.Error()
	}

	if err := validate.Struct(obj); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, fe := range errs {
				messages = append(messages, fieldErrorMessage(fe))
			}
			return strings.Join(messages, "; ")
		}
		return "Validation failed: " + err.Error()
	}

	return ""
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

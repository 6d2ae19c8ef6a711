package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/havenlabs/haven/backend/internal/apierror"
)

// currentUserID pulls the authenticated user out of the gin context. A
// missing value means the auth middleware did not run; respond 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return "", false
	}
	return userID.(string), true
}

// bindJSON binds the request body and writes a problem response on failure.
// Validator tag failures become per-field errors; anything else is reported
// as malformed JSON.
func bindJSON(c *gin.Context, target any) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}

	requestID := apierror.GetRequestID(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apierror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
				Code:    fe.Tag(),
			})
		}
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return false
	}

	apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error body shared by all handlers
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindError turns binding failures into a readable message, unpacking
// validator errors field by field.
func bindError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return ErrorResponse{Error: "validation failed: " + strings.Join(parts, "; ")}
	}
	return ErrorResponse{Error: "invalid request body"}
}

// currentUserID reads the user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(int)
	return id, ok
}

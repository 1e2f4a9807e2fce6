package handler // handler defines the HTTP handlers of the API

import (
	"errors"

	"github.com/go-playground/validator/v10" // request DTO validation
	"github.com/labstack/echo/v4"            // echo defines request context types
)

// validate checks struct tags on request DTOs.  A single instance is
// safe for concurrent use.
var validate = validator.New()

// getUserID extracts the authenticated user's UUID from echo.Context.
// JWTAuth stores the subject claim under "user_id"; anything else is
// treated as an unauthenticated request.
func getUserID(c echo.Context) (string, error) {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("invalid user_id in context")
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// queryID parses a numeric query parameter, rejecting absent and malformed
// values with a validation error.
func queryID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, appErrors.ErrValidation.Clone(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.ErrValidation.Clone(name + " must be a positive integer")
	}
	return id, nil
}

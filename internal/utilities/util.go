// Package utilities contain utility code that use across the package
package utilities

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload shape shared by every route.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success payload shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// DecodePatch reads the request body as a shallow field map. An empty body
// yields an empty patch, which PATCH handlers treat as a no-op.
func DecodePatch(c *gin.Context) (map[string]any, error) {
	patch := map[string]any{}
	if err := json.NewDecoder(c.Request.Body).Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return patch, nil
}

// IntQuery parses an integer query parameter, falling back on absence or a
// malformed value.
func IntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

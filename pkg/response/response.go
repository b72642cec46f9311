package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
)

// The wire contract predates this service: success bodies are plain JSON
// documents (arrays for listings, `{message, ...}` objects for writes) and
// error bodies are `{error}` objects with a status in {400, 404, 409, 500}.
// A machine-readable `code` field is added alongside `error`.

// JSON sends a success response with the given payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a `{message}` body, optionally merged with extras.
func Message(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	JSON(c, status, body)
}

// Error converts any error to the `{error, code}` wire shape.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorJSON writes the uniform error body used across the API.
func errorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// internalError logs the underlying cause server-side and answers with
// a generic message. Storage details never reach the client.
func internalError(c *gin.Context, logger *slog.Logger, message string, err error) {
	logger.Error(message,
		slog.String("path", c.Request.URL.Path),
		slog.String("err", err.Error()),
	)
	errorJSON(c, http.StatusInternalServerError, message)
}

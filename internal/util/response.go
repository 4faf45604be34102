package util

import (
	"net/http"

	"educatif_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers respond with the exact body shapes the historical clients expect:
// plain arrays/objects at the top level, errors as {"message": ...}. No
// envelope is added around payloads.

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Message(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// InternalError logs the failure and surfaces its message to the caller.
func InternalError(c *gin.Context, err error) {
	logger.Log.Error("internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Message(c, http.StatusInternalServerError, err.Error())
}

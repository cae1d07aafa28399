package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventhub-be/internal/apperrors"
	"eventhub-be/internal/logger"
	"eventhub-be/internal/middleware"
)

// respondError writes the JSON error body for err. Internal failures are
// logged with their cause; the client only sees a generic message.
func respondError(c *gin.Context, log logger.Logger, err error) {
	status, body := apperrors.MapErrorToHTTP(err)
	if apperrors.KindOf(err) == apperrors.KindInternal {
		log.Error("Request failed", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": middleware.RequestID(c),
			"error":      err,
		})
	}
	c.JSON(status, body)
}

func respondInvalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "Invalid request body"})
}

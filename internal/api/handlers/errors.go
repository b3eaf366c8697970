package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/models"
)

// respondError 將服務層錯誤轉換成 HTTP 回應
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoActiveVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active vote", "code": "no_active_vote"})
	case errors.Is(err, models.ErrDuplicateBallot):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already voted", "code": "duplicate_ballot"})
	case errors.Is(err, models.ErrUnknownOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choice is not one of the vote options", "code": "unknown_option"})
	case errors.Is(err, models.ErrDelegateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Delegate not found", "code": "delegate_not_found"})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "伺服器錯誤", "code": "internal"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
}

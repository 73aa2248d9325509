package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// currentUser returns the id AuthMiddleware stored on the context.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return uuid.Nil, false
	}
	return userID, true
}

// sessionError renders an onboarding failure. Rejections that leave a
// session behind include it so the client can keep the user's input.
func sessionError(c *gin.Context, sess onboarding.Session, err error) {
	var (
		stepErr    *onboarding.StepError
		invalid    *onboarding.ValidationError
		gatewayErr *onboarding.GatewayError
	)
	switch {
	case errors.As(err, &stepErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stepErr.Message, "step": stepErr.Step})
	case errors.As(err, &invalid):
		body := gin.H{"error": invalid.Error(), "violations": invalid.Violations}
		if sess.UserID != "" {
			body["session"] = sess
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &gatewayErr):
		body := gin.H{"error": gatewayErr.Reason}
		if sess.UserID != "" {
			body["session"] = sess
		}
		c.JSON(http.StatusBadGateway, body)
	default:
		respondError(c, err)
	}
}

// respondError maps service errors to status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, onboarding.ErrProfileNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, onboarding.ErrUnknownStep),
		errors.Is(err, service.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSubmissionInFlight),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slogx.FromContext(c.Request.Context()).Error("request failed", "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

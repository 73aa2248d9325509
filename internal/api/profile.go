package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/service"
)

type ProfileHandler struct {
	onboarding service.IOnboardingService
}

func NewProfileHandler(svc service.IOnboardingService) *ProfileHandler {
	return &ProfileHandler{onboarding: svc}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.onboarding.Profile(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial edit to the stored profile and resubmits
// it. The stored profile is untouched unless the merged result is valid.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var patch onboarding.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.onboarding.EditProfile(c.Request.Context(), userID.String(), patch)
	if err != nil {
		sessionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess.Submitted)
}

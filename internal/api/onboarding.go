package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/service"
)

// OnboardingHandler serves the profile wizard.
type OnboardingHandler struct {
	onboarding service.IOnboardingService
}

func NewOnboardingHandler(svc service.IOnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: svc}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *OnboardingHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/onboarding")
	{
		g.POST("", h.Start)
		g.GET("", h.Current)
		g.DELETE("", h.Discard)
		g.PUT("/steps/:step", h.ApplyStep)
		g.POST("/submit", h.Submit)
	}
}

func (h *OnboardingHandler) Start(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sess, err := h.onboarding.Start(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *OnboardingHandler) Current(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sess, err := h.onboarding.Current(c.Request.Context(), userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ApplyStep decodes the body as the payload of the named step. A step
// without fields, such as skip-diet, may be sent with an empty body.
func (h *OnboardingHandler) ApplyStep(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	step, err := onboarding.NewStep(onboarding.StepName(c.Param("step")))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := c.ShouldBindJSON(step); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "step": step.Name()})
		return
	}

	sess, err := h.onboarding.ApplyStep(c.Request.Context(), userID.String(), step)
	if err != nil {
		sessionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *OnboardingHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sess, err := h.onboarding.Submit(c.Request.Context(), userID.String())
	if err != nil {
		sessionError(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *OnboardingHandler) Discard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.onboarding.Discard(c.Request.Context(), userID.String()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/slogx"
	"github.com/pageza/nutrilens/backend/internal/types"
)

type AuthHandler struct {
	authService service.IAuthService
	profiles    service.IProfileService
	limit       gin.HandlerFunc
}

// NewAuthHandler creates an AuthHandler. limit, when non-nil, guards the
// credential endpoints.
func NewAuthHandler(authService service.IAuthService, profiles service.IProfileService, limit gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		profiles:    profiles,
		limit:       limit,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	if h.limit != nil {
		auth.Use(h.limit)
	}
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email and password."})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(&types.TokenClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		respondError(c, err)
		return
	}

	slogx.FromContext(c.Request.Context()).Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, UserID: user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(&types.TokenClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		respondError(c, err)
		return
	}

	done, err := h.profiles.OnboardingComplete(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, UserID: user.ID, OnboardingComplete: done})
}

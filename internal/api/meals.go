package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/middleware"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/types"
)

// MaxPhotoBytes caps the size of an uploaded meal photo.
const MaxPhotoBytes = 10 << 20

type MealHandler struct {
	meals   service.IMealService
	limiter *middleware.RateLimiter
	now     func() time.Time
}

// NewMealHandler creates a MealHandler. A nil limiter disables the analysis
// quota.
func NewMealHandler(meals service.IMealService, limiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{meals: meals, limiter: limiter, now: time.Now}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		if h.limiter != nil {
			meals.POST("/analyze", h.limiter.RateLimitMiddleware(), h.Analyze)
		} else {
			meals.POST("/analyze", h.Analyze)
		}
	}
}

// Analyze accepts a multipart form with a "photo" file and an optional
// "name" overriding the detected meal name.
func (h *MealHandler) Analyze(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a meal photo is required"})
		return
	}
	if header.Size > MaxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("photo must be at most %d MB", MaxPhotoBytes>>20)})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "photo must be an image"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	analysis, err := h.meals.Analyze(c.Request.Context(), userID, service.MealUpload{
		Name:        c.PostForm("name"),
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, analysis)
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	day, ok := queryDay(c, h.now)
	if !ok {
		return
	}

	meals, err := h.meals.ListMeals(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := types.MealListResponse{
		Day:   day.Format(onboarding.DateLayout),
		Meals: make([]types.MealEntry, len(meals)),
	}
	for i, m := range meals {
		resp.Meals[i] = types.MealEntry{
			ID:          m.ID,
			Name:        m.Name,
			ServingSize: m.ServingSize,
			Calories:    m.Calories,
			Protein:     m.Protein,
			Carbs:       m.Carbs,
			Fat:         m.Fat,
			PhotoURL:    m.PhotoURL,
			EatenAt:     m.EatenAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// queryDay reads ?day=YYYY-MM-DD, defaulting to today in UTC.
func queryDay(c *gin.Context, now func() time.Time) (time.Time, bool) {
	raw := c.Query("day")
	if raw == "" {
		t := now().UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	day, err := onboarding.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/slogx"
	"github.com/pageza/nutrilens/backend/internal/types"
	"gorm.io/gorm"
)

// MealUpload is a meal photo submitted for analysis.
type MealUpload struct {
	// Name overrides the detected meal name when set.
	Name        string
	Filename    string
	ContentType string
	Body        io.Reader
	EatenAt     time.Time
}

// SimulatedAnalyzer returns a fixed breakdown for every photo. It stands in
// for a vision model until one is wired up.
type SimulatedAnalyzer struct{}

var _ MealAnalyzer = SimulatedAnalyzer{}

func (SimulatedAnalyzer) Analyze(_ context.Context, upload MealUpload) (*types.MealAnalysis, error) {
	name := strings.TrimSpace(upload.Name)
	if name == "" {
		name = "Grilled Chicken Salad"
	}
	return &types.MealAnalysis{
		Name:        name,
		ServingSize: "1 serving (300g)",
		Calories:    420,
		Confidence:  92,
		Macros: types.Macros{
			Carbs:   35,
			Protein: 28,
			Fat:     18,
			Fiber:   8,
		},
		Micronutrients: []types.Micronutrient{
			{Name: "Vitamin C", Amount: "45mg", DailyValuePct: 50},
			{Name: "Iron", Amount: "3.2mg", DailyValuePct: 18},
			{Name: "Calcium", Amount: "120mg", DailyValuePct: 12},
		},
		Ingredients: []types.Ingredient{
			{Name: "Grilled Chicken Breast", Amount: "150g"},
			{Name: "Mixed Greens", Amount: "100g"},
			{Name: "Cherry Tomatoes", Amount: "50g"},
			{Name: "Olive Oil Dressing", Amount: "15ml"},
		},
	}, nil
}

// MealService analyzes meal photos and keeps the user's food log.
type MealService struct {
	db       *gorm.DB
	analyzer MealAnalyzer
	photos   PhotoStore
	now      func() time.Time
}

// Ensure MealService implements IMealService
var _ IMealService = (*MealService)(nil)

// NewMealService creates a MealService. photos may be nil, in which case
// uploads are analyzed but not stored.
func NewMealService(db *gorm.DB, analyzer MealAnalyzer, photos PhotoStore) *MealService {
	return &MealService{
		db:       db,
		analyzer: analyzer,
		photos:   photos,
		now:      time.Now,
	}
}

// Analyze stores the photo, runs the analyzer and logs the result as a meal.
func (s *MealService) Analyze(ctx context.Context, userID uuid.UUID, upload MealUpload) (*types.MealAnalysis, error) {
	var photoURL string
	if s.photos != nil && upload.Body != nil {
		key := fmt.Sprintf("meal-photos/%s/%s%s", userID, uuid.New(), path.Ext(upload.Filename))
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		url, err := s.photos.Put(ctx, key, contentType, upload.Body)
		if err != nil {
			return nil, err
		}
		photoURL = url
	}

	analysis, err := s.analyzer.Analyze(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("analyze meal: %w", err)
	}

	eatenAt := upload.EatenAt
	if eatenAt.IsZero() {
		eatenAt = s.now()
	}
	meal := &models.Meal{
		UserID:      userID,
		Name:        analysis.Name,
		ServingSize: analysis.ServingSize,
		Calories:    analysis.Calories,
		Protein:     analysis.Macros.Protein,
		Carbs:       analysis.Macros.Carbs,
		Fat:         analysis.Macros.Fat,
		Fiber:       analysis.Macros.Fiber,
		Confidence:  analysis.Confidence,
		PhotoURL:    photoURL,
		EatenAt:     eatenAt.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("save meal: %w", err)
	}

	analysis.MealID = meal.ID
	analysis.PhotoURL = photoURL
	slogx.FromContext(ctx).Info("meal logged", "user_id", userID, "meal_id", meal.ID, "calories", meal.Calories)
	return analysis, nil
}

// ListMeals returns the meals userID ate on day (UTC), oldest first.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Meal, error) {
	start, end := dayBounds(day)
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND eaten_at >= ? AND eaten_at < ?", userID, start, end).
		Order("eaten_at").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

// dayBounds returns the half-open UTC interval covering t's calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

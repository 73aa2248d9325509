package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/nutrition"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/types"
	"gorm.io/gorm"
)

// DashboardService compares a day's logged meals with the targets derived
// from the user's profile.
type DashboardService struct {
	db       *gorm.DB
	profiles onboarding.Gateway
}

// Ensure DashboardService implements IDashboardService
var _ IDashboardService = (*DashboardService)(nil)

func NewDashboardService(db *gorm.DB, profiles onboarding.Gateway) *DashboardService {
	return &DashboardService{db: db, profiles: profiles}
}

type dayTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Meals    int
}

// Dashboard fails with onboarding.ErrProfileNotFound until the user has
// finished onboarding.
func (s *DashboardService) Dashboard(ctx context.Context, userID uuid.UUID, day time.Time) (*types.Dashboard, error) {
	p, err := s.profiles.FetchProfile(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	start, end := dayBounds(day)
	p.Age = p.AgeOn(start)
	targets := nutrition.For(*p)

	var totals dayTotals
	err = s.db.WithContext(ctx).Model(&models.Meal{}).
		Select("COALESCE(SUM(calories), 0) AS calories, COALESCE(SUM(protein), 0) AS protein, "+
			"COALESCE(SUM(carbs), 0) AS carbs, COALESCE(SUM(fat), 0) AS fat, COUNT(*) AS meals").
		Where("user_id = ? AND eaten_at >= ? AND eaten_at < ?", userID, start, end).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}

	return &types.Dashboard{
		Day:       start.Format(onboarding.DateLayout),
		Calories:  progress(totals.Calories, targets.Calories),
		Protein:   progress(totals.Protein, targets.Protein),
		Carbs:     progress(totals.Carbs, targets.Carbs),
		Fat:       progress(totals.Fat, targets.Fat),
		MealCount: totals.Meals,
	}, nil
}

func progress(consumed float64, target int) types.Progress {
	return types.Progress{
		Consumed: consumed,
		Target:   float64(target),
		Ratio:    nutrition.Progress(consumed, float64(target)),
	}
}

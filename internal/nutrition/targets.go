// Package nutrition derives daily intake targets from a profile.
package nutrition

import (
	"math"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/schema"
)

// MinCalories is the floor applied to every calorie target.
const MinCalories = 1200

var activityMultipliers = map[string]float64{
	schema.ActivitySedentary:        1.2,
	schema.ActivityLightlyActive:    1.55,
	schema.ActivityModeratelyActive: 1.725,
	schema.ActivityVeryActive:       1.9,
}

var goalAdjustments = map[string]float64{
	schema.GoalLoseWeight:     -500,
	schema.GoalMaintainWeight: 0,
	schema.GoalGainWeight:     500,
}

// Share of calories per macro and calories per gram.
const (
	proteinShare = 0.20
	carbsShare   = 0.50
	fatShare     = 0.30

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Targets are daily goals. Macros are in grams.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// BMR is the Mifflin-St Jeor basal metabolic rate of p in kcal.
func BMR(p onboarding.Profile) float64 {
	kg := schema.KilogramsOf(p.Weight, p.WeightUnit)
	cm := p.Height
	bmr := 10*kg + 6.25*cm - 5*float64(p.Age)
	if p.Gender == schema.GenderFemale {
		return bmr - 161
	}
	return bmr + 5
}

// ActivityMultiplier returns the TDEE factor for level, defaulting to
// sedentary for unknown values.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[schema.ActivitySedentary]
}

// For computes the daily targets of p.
func For(p onboarding.Profile) Targets {
	kcal := BMR(p)*ActivityMultiplier(p.ActivityLevel) + goalAdjustments[p.HealthGoal]
	kcal = math.Max(math.Round(kcal), MinCalories)
	return Targets{
		Calories: int(kcal),
		Protein:  int(math.Round(kcal * proteinShare / kcalPerGramProtein)),
		Carbs:    int(math.Round(kcal * carbsShare / kcalPerGramCarbs)),
		Fat:      int(math.Round(kcal * fatShare / kcalPerGramFat)),
	}
}

// Progress returns consumed/target clamped to [0, 1]. A zero target yields 0.
func Progress(consumed, target float64) float64 {
	if target <= 0 || consumed <= 0 {
		return 0
	}
	return math.Min(consumed/target, 1)
}

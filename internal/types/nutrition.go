package types

import "github.com/google/uuid"

// Macros are grams per nutrient.
type Macros struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

type Micronutrient struct {
	Name          string `json:"name"`
	Amount        string `json:"amount"`
	DailyValuePct int    `json:"daily_value_pct"`
}

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// MealAnalysis is the nutrition breakdown of a meal photo.
type MealAnalysis struct {
	MealID         uuid.UUID       `json:"meal_id"`
	Name           string          `json:"name"`
	ServingSize    string          `json:"serving_size"`
	Calories       int             `json:"calories"`
	Confidence     int             `json:"confidence"`
	Macros         Macros          `json:"macros"`
	Micronutrients []Micronutrient `json:"micronutrients"`
	Ingredients    []Ingredient    `json:"ingredients"`
	PhotoURL       string          `json:"photo_url,omitempty"`
}

// Progress pairs a consumed amount with its daily target.
type Progress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Ratio    float64 `json:"ratio"`
}

// Dashboard is the home screen summary for one day.
type Dashboard struct {
	Day       string   `json:"day"`
	Calories  Progress `json:"calories"`
	Protein   Progress `json:"protein"`
	Carbs     Progress `json:"carbs"`
	Fat       Progress `json:"fat"`
	MealCount int      `json:"meal_count"`
}

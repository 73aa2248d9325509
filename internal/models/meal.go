package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is an analyzed meal photo. Macros are in grams.
type Meal struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index:idx_meals_user_eaten" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	ServingSize string    `gorm:"size:100" json:"serving_size"`
	Calories    int       `gorm:"not null;check:calories >= 0" json:"calories"`
	Protein     float64   `gorm:"not null" json:"protein"`
	Carbs       float64   `gorm:"not null" json:"carbs"`
	Fat         float64   `gorm:"not null" json:"fat"`
	Fiber       float64   `gorm:"not null" json:"fiber"`
	Confidence  int       `gorm:"not null" json:"confidence"`
	PhotoURL    string    `gorm:"size:1024" json:"photo_url"`
	EatenAt     time.Time `gorm:"not null;index:idx_meals_user_eaten" json:"eaten_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

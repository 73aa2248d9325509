package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the stored nutrition profile of a user. The check constraints
// mirror internal/schema and are what the database enforces on upsert.
type Profile struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	FirstName          string           `gorm:"size:100;not null;check:first_name <> ''" json:"first_name"`
	LastName           string           `gorm:"size:100" json:"last_name"`
	DateOfBirth        time.Time        `gorm:"type:date;not null" json:"date_of_birth"`
	Age                int              `gorm:"not null;check:age >= 18 AND age <= 120" json:"age"`
	AgeOverridden      bool             `gorm:"not null;default:false" json:"age_overridden"`
	Gender             string           `gorm:"size:16;not null;check:gender = 'male' OR gender = 'female'" json:"gender"`
	Height             float64          `gorm:"not null;check:height > 0" json:"height"`
	HeightUnit         string           `gorm:"size:16;not null;check:height_unit = 'cm' OR height_unit = 'ft/inches'" json:"height_unit"`
	Weight             float64          `gorm:"not null;check:weight > 0" json:"weight"`
	WeightUnit         string           `gorm:"size:8;not null;check:weight_unit = 'kg' OR weight_unit = 'lbs'" json:"weight_unit"`
	HealthGoal         string           `gorm:"size:32;not null;check:health_goal = 'lose_weight' OR health_goal = 'maintain_weight' OR health_goal = 'gain_weight'" json:"health_goal"`
	ActivityLevel      string           `gorm:"size:32;not null;check:activity_level = 'sedentary' OR activity_level = 'lightly_active' OR activity_level = 'moderately_active' OR activity_level = 'very_active'" json:"activity_level"`
	OnboardingComplete bool             `gorm:"not null;default:false" json:"onboarding_complete"`
	DietPreferences    []DietPreference `gorm:"foreignKey:UserID;references:UserID" json:"diet_preferences"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

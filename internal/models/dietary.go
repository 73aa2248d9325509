package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietPreference is one member of a profile's diet preference set.
type DietPreference struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_diet_user_pref" json:"user_id"`
	Preference string    `gorm:"size:32;not null;uniqueIndex:idx_diet_user_pref;check:preference = 'none' OR preference = 'vegetarian' OR preference = 'vegan' OR preference = 'keto' OR preference = 'non-vegetarian'" json:"preference"`
	Position   int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DietPreference) TableName() string {
	return "profile_diet_preferences"
}

func (d *DietPreference) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

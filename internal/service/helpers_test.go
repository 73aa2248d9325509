package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testClock() time.Time {
	return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
}

func createUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &models.User{Email: uuid.NewString() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func sampleProfile(userID uuid.UUID) onboarding.Profile {
	return onboarding.Profile{
		UserID:             userID.String(),
		FirstName:          "Ada",
		LastName:           "Lovelace",
		DateOfBirth:        "1990-03-01",
		Age:                34,
		Gender:             "female",
		Height:             170,
		HeightUnit:         "cm",
		Weight:             65,
		WeightUnit:         "kg",
		HealthGoal:         "lose_weight",
		ActivityLevel:      "lightly_active",
		DietPreferences:    []string{"vegetarian", "keto"},
		OnboardingComplete: true,
	}
}

func wizardSteps() []onboarding.Step {
	return []onboarding.Step{
		onboarding.NameStep{FirstName: "Sam", LastName: "Rivera"},
		onboarding.BirthdayStep{DateOfBirth: "1995-09-20"},
		onboarding.HeightStep{Unit: "ft/inches", Feet: 5, Inches: 11},
		onboarding.WeightStep{Unit: "kg", Value: 80},
		onboarding.GenderStep{Gender: "male"},
		onboarding.GoalStep{HealthGoal: "maintain_weight"},
		onboarding.ActivityStep{ActivityLevel: "moderately_active"},
		onboarding.DietStep{Preferences: []string{"non-vegetarian"}},
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/slogx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService is the persistence gateway for nutrition profiles
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// FetchProfile returns the stored profile of userID, or
// onboarding.ErrProfileNotFound.
func (s *ProfileService) FetchProfile(ctx context.Context, userID string) (*onboarding.Profile, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, onboarding.ErrProfileNotFound
	}

	var row models.Profile
	err = s.db.WithContext(ctx).
		Preload("DietPreferences", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", uid).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, onboarding.ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	p := toProfile(&row)
	return &p, nil
}

// UpsertProfile creates or replaces the profile keyed by its user id, along
// with its diet preferences, in one transaction. Any database error is
// returned as a *onboarding.GatewayError carrying the driver's message.
func (s *ProfileService) UpsertProfile(ctx context.Context, p onboarding.Profile) error {
	uid, err := uuid.Parse(p.UserID)
	if err != nil {
		return &onboarding.GatewayError{Reason: "invalid user id", Err: err}
	}
	dob, err := onboarding.ParseDate(p.DateOfBirth)
	if err != nil {
		return &onboarding.GatewayError{Reason: "invalid date of birth", Err: err}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Profile
		err := tx.Where("user_id = ?", uid).First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row.UserID = uid
		row.FirstName = p.FirstName
		row.LastName = p.LastName
		row.DateOfBirth = dob
		row.Age = p.Age
		row.AgeOverridden = p.AgeOverridden
		row.Gender = p.Gender
		row.Height = p.Height
		row.HeightUnit = p.HeightUnit
		row.Weight = p.Weight
		row.WeightUnit = p.WeightUnit
		row.HealthGoal = p.HealthGoal
		row.ActivityLevel = p.ActivityLevel
		row.OnboardingComplete = p.OnboardingComplete
		row.DietPreferences = nil

		if err := tx.Omit(clause.Associations).Save(&row).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", uid).Delete(&models.DietPreference{}).Error; err != nil {
			return err
		}
		prefs := make([]models.DietPreference, len(p.DietPreferences))
		for i, pref := range p.DietPreferences {
			prefs[i] = models.DietPreference{UserID: uid, Preference: pref, Position: i}
		}
		if len(prefs) > 0 {
			if err := tx.Create(&prefs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("profile upsert rejected", "user_id", p.UserID, "error", err)
		return &onboarding.GatewayError{Reason: err.Error(), Err: err}
	}
	return nil
}

// OnboardingComplete reports whether userID has a submitted profile.
func (s *ProfileService) OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ? AND onboarding_complete = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toProfile(row *models.Profile) onboarding.Profile {
	prefs := make([]string, len(row.DietPreferences))
	for i, dp := range row.DietPreferences {
		prefs[i] = dp.Preference
	}
	return onboarding.Profile{
		UserID:             row.UserID.String(),
		FirstName:          row.FirstName,
		LastName:           row.LastName,
		DateOfBirth:        row.DateOfBirth.UTC().Format(onboarding.DateLayout),
		Age:                row.Age,
		AgeOverridden:      row.AgeOverridden,
		Gender:             row.Gender,
		Height:             row.Height,
		HeightUnit:         row.HeightUnit,
		Weight:             row.Weight,
		WeightUnit:         row.WeightUnit,
		HealthGoal:         row.HealthGoal,
		ActivityLevel:      row.ActivityLevel,
		DietPreferences:    prefs,
		OnboardingComplete: row.OnboardingComplete,
	}
}

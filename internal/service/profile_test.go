package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFetchProfileNotFound(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	_, err := svc.FetchProfile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)

	_, err = svc.FetchProfile(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)
}

func TestUpsertProfileCreatesAndReplaces(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testUpsertProfileCreatesAndReplaces(t, db)
}

func TestUpsertProfileRejectedByConstraint(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testUpsertProfileRejectedByConstraint(t, db)
}

func TestProfilePostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	t.Run("creates and replaces", func(t *testing.T) {
		testUpsertProfileCreatesAndReplaces(t, db)
	})
	t.Run("constraint violation", func(t *testing.T) {
		testUpsertProfileRejectedByConstraint(t, db)
	})
}

func testUpsertProfileCreatesAndReplaces(t *testing.T, db *gorm.DB) {
	svc := NewProfileService(db)
	ctx := context.Background()
	userID := createUser(t, db)

	done, err := svc.OnboardingComplete(ctx, userID)
	require.NoError(t, err)
	assert.False(t, done)

	p := sampleProfile(userID)
	require.NoError(t, svc.UpsertProfile(ctx, p))

	got, err := svc.FetchProfile(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	done, err = svc.OnboardingComplete(ctx, userID)
	require.NoError(t, err)
	assert.True(t, done)

	p.Weight = 62.5
	p.DietPreferences = []string{"vegan"}
	p.Age = 40
	p.AgeOverridden = true
	require.NoError(t, svc.UpsertProfile(ctx, p))

	got, err = svc.FetchProfile(ctx, userID.String())
	require.NoError(t, err)
	assert.Equal(t, 62.5, got.Weight)
	assert.Equal(t, []string{"vegan"}, got.DietPreferences)
	assert.Equal(t, 40, got.Age)
	assert.True(t, got.AgeOverridden)

	var rows int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func testUpsertProfileRejectedByConstraint(t *testing.T, db *gorm.DB) {
	svc := NewProfileService(db)
	ctx := context.Background()
	userID := createUser(t, db)

	p := sampleProfile(userID)
	p.Gender = "other"
	err := svc.UpsertProfile(ctx, p)
	require.Error(t, err)

	var gerr *onboarding.GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.NotEmpty(t, gerr.Reason)
	assert.Equal(t, gerr.Reason, err.Error())

	_, err = svc.FetchProfile(ctx, userID.String())
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)
}

func TestUpsertProfileInvalidIdentity(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewProfileService(db)

	p := sampleProfile(uuid.New())
	p.UserID = "nope"
	var gerr *onboarding.GatewayError
	require.ErrorAs(t, svc.UpsertProfile(context.Background(), p), &gerr)
	assert.Equal(t, "invalid user id", gerr.Reason)
}

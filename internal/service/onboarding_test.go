package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type onboardingFixture struct {
	svc      *OnboardingService
	profiles *ProfileService
	drafts   *MemoryDraftStore
	userID   string
}

func newOnboardingFixture(t *testing.T) onboardingFixture {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	profiles := NewProfileService(db)
	drafts := NewMemoryDraftStore(0)
	return onboardingFixture{
		svc:      NewOnboardingService(profiles, drafts, testClock),
		profiles: profiles,
		drafts:   drafts,
		userID:   createUser(t, db).String(),
	}
}

func (f onboardingFixture) completeWizard(t *testing.T) onboarding.Session {
	t.Helper()
	ctx := context.Background()
	var sess onboarding.Session
	for _, step := range wizardSteps() {
		var err error
		sess, err = f.svc.ApplyStep(ctx, f.userID, step)
		require.NoError(t, err, step.Name())
	}
	require.Equal(t, onboarding.StateDraftComplete, sess.State)
	return sess
}

func TestOnboardingSubmitFlow(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Current(ctx, f.userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	f.completeWizard(t)

	sess, err := f.svc.Submit(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateSubmitted, sess.State)
	require.NotNil(t, sess.Submitted)
	assert.Equal(t, 28, sess.Submitted.Age)
	assert.Equal(t, 180.34, sess.Submitted.Height)

	_, err = f.drafts.Load(ctx, f.userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	stored, err := f.svc.Profile(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, stored.OnboardingComplete)
	assert.Equal(t, "Sam", stored.FirstName)

	current, err := f.svc.Current(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateSubmitted, current.State)
}

func TestOnboardingSubmitWithoutDraft(t *testing.T) {
	f := newOnboardingFixture(t)
	_, err := f.svc.Submit(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestOnboardingSubmitTwiceIsNoop(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	f.completeWizard(t)

	first, err := f.svc.Submit(ctx, f.userID)
	require.NoError(t, err)

	again, err := f.svc.Submit(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateSubmitted, again.State)
	require.NotNil(t, again.Submitted)
	assert.Equal(t, first.Submitted.FirstName, again.Submitted.FirstName)

	_, err = f.drafts.Load(ctx, f.userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestOnboardingApplyStepDuringSubmit(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	f.completeWizard(t)

	release, err := f.drafts.Acquire(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.ApplyStep(ctx, f.userID, onboarding.WeightStep{Unit: "kg", Value: 90})
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	release()

	saved, err := f.drafts.Load(ctx, f.userID)
	require.NoError(t, err)
	require.NotNil(t, saved.Draft.Weight)
	assert.Equal(t, 80.0, *saved.Draft.Weight)

	sess, err := f.svc.ApplyStep(ctx, f.userID, onboarding.WeightStep{Unit: "kg", Value: 90})
	require.NoError(t, err)
	assert.Equal(t, 90.0, *sess.Draft.Weight)
}

func TestOnboardingSubmitInvalidKeepsDraft(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyStep(ctx, f.userID, onboarding.NameStep{FirstName: "Sam"})
	require.NoError(t, err)

	sess, err := f.svc.Submit(ctx, f.userID)
	var verr *onboarding.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, onboarding.StateDraftIncomplete, sess.State)

	saved, err := f.drafts.Load(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, verr.Error(), saved.LastError)

	_, err = f.svc.Profile(ctx, f.userID)
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)
}

type failingGateway struct {
	onboarding.Gateway
	err error
}

func (g failingGateway) UpsertProfile(context.Context, onboarding.Profile) error {
	return g.err
}

func TestOnboardingSubmitGatewayFailure(t *testing.T) {
	f := newOnboardingFixture(t)
	gw := failingGateway{Gateway: f.profiles, err: errors.New(`new row violates check constraint "chk_profiles_age"`)}
	f.svc = NewOnboardingService(gw, f.drafts, testClock)
	ctx := context.Background()
	f.completeWizard(t)

	sess, err := f.svc.Submit(ctx, f.userID)
	var gerr *onboarding.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, onboarding.StateDraftComplete, sess.State)
	assert.Equal(t, `new row violates check constraint "chk_profiles_age"`, sess.LastError)

	saved, err := f.drafts.Load(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateDraftComplete, saved.State)
	assert.Equal(t, sess.LastError, saved.LastError)
}

func TestOnboardingSubmitInFlight(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	f.completeWizard(t)

	release, err := f.drafts.Acquire(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.userID)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	release()
	_, err = f.svc.Submit(ctx, f.userID)
	assert.NoError(t, err)
}

func TestOnboardingRejectedStepLeavesDraft(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()

	before, err := f.svc.ApplyStep(ctx, f.userID, onboarding.HeightStep{Unit: "cm", Centimeters: 180})
	require.NoError(t, err)

	_, err = f.svc.ApplyStep(ctx, f.userID, onboarding.HeightStep{Unit: "cm", Centimeters: 20})
	var serr *onboarding.StepError
	require.ErrorAs(t, err, &serr)

	after, err := f.svc.Current(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOnboardingStartAndDiscard(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyStep(ctx, f.userID, onboarding.NameStep{FirstName: "Sam"})
	require.NoError(t, err)

	sess, err := f.svc.Start(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.Draft{}, sess.Draft)

	require.NoError(t, f.svc.Discard(ctx, f.userID))
	_, err = f.svc.Current(ctx, f.userID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestEditProfile(t *testing.T) {
	f := newOnboardingFixture(t)
	ctx := context.Background()
	f.completeWizard(t)
	_, err := f.svc.Submit(ctx, f.userID)
	require.NoError(t, err)

	sess, err := f.svc.EditProfile(ctx, f.userID, onboarding.Patch{
		Weight: &onboarding.WeightStep{Unit: "lbs", Value: 170},
	})
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateSubmitted, sess.State)

	stored, err := f.svc.Profile(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 170.0, stored.Weight)
	assert.Equal(t, "lbs", stored.WeightUnit)
	assert.Equal(t, "Sam", stored.FirstName)

	_, err = f.svc.EditProfile(ctx, f.userID, onboarding.Patch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = f.svc.EditProfile(ctx, f.userID, onboarding.Patch{Age: &onboarding.AgeStep{Age: 17}})
	var verr *onboarding.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "18 and 120")

	stored, err = f.svc.Profile(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 28, stored.Age)
}

func TestEditProfileWithoutProfile(t *testing.T) {
	f := newOnboardingFixture(t)
	_, err := f.svc.EditProfile(context.Background(), f.userID, onboarding.Patch{
		Name: &onboarding.NameStep{FirstName: "Sam"},
	})
	assert.ErrorIs(t, err, onboarding.ErrProfileNotFound)
}

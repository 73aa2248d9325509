package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// OnboardingService keeps each user's wizard session in a DraftStore between
// requests and hands submissions to the persistence gateway.
type OnboardingService struct {
	controller *onboarding.Controller
	gateway    onboarding.Gateway
	drafts     DraftStore
}

// Ensure OnboardingService implements IOnboardingService
var _ IOnboardingService = (*OnboardingService)(nil)

func NewOnboardingService(gateway onboarding.Gateway, drafts DraftStore, now func() time.Time) *OnboardingService {
	return &OnboardingService{
		controller: onboarding.NewController(gateway, now),
		gateway:    gateway,
		drafts:     drafts,
	}
}

// Start discards any draft in progress and begins an empty one.
func (s *OnboardingService) Start(ctx context.Context, userID string) (onboarding.Session, error) {
	sess := s.controller.Start(userID)
	if err := s.drafts.Save(ctx, sess); err != nil {
		return onboarding.Session{}, err
	}
	return sess, nil
}

// Current returns the draft in progress. Without one, a user who already
// finished onboarding gets their stored profile as a submitted session.
func (s *OnboardingService) Current(ctx context.Context, userID string) (onboarding.Session, error) {
	sess, err := s.drafts.Load(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrDraftNotFound) {
		return onboarding.Session{}, err
	}

	sess, err = s.controller.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, onboarding.ErrProfileNotFound) {
			return onboarding.Session{}, ErrDraftNotFound
		}
		return onboarding.Session{}, err
	}
	return sess, nil
}

// ApplyStep folds step into the user's session, starting one if needed. It
// fails with ErrSubmissionInFlight while the session is being submitted.
func (s *OnboardingService) ApplyStep(ctx context.Context, userID string, step onboarding.Step) (onboarding.Session, error) {
	release, err := s.drafts.Acquire(ctx, userID)
	if err != nil {
		return onboarding.Session{}, err
	}
	defer release()

	sess, err := s.Current(ctx, userID)
	if errors.Is(err, ErrDraftNotFound) {
		sess, err = s.controller.Start(userID), nil
	}
	if err != nil {
		return onboarding.Session{}, err
	}

	sess, err = s.controller.Apply(sess, step)
	if err != nil {
		return sess, err
	}
	if err := s.drafts.Save(ctx, sess); err != nil {
		return onboarding.Session{}, err
	}
	return sess, nil
}

// Submit validates and persists the user's draft. Only one submission per
// user runs at a time; a concurrent one fails with ErrSubmissionInFlight.
// Without a draft, a user who already finished onboarding gets the stored
// profile back unchanged.
func (s *OnboardingService) Submit(ctx context.Context, userID string) (onboarding.Session, error) {
	release, err := s.drafts.Acquire(ctx, userID)
	if err != nil {
		return onboarding.Session{}, err
	}
	defer release()

	sess, err := s.drafts.Load(ctx, userID)
	if errors.Is(err, ErrDraftNotFound) {
		sess, err = s.controller.Load(ctx, userID)
		if errors.Is(err, onboarding.ErrProfileNotFound) {
			err = ErrDraftNotFound
		}
	}
	if err != nil {
		return onboarding.Session{}, err
	}
	if sess.State == onboarding.StateSubmitted {
		return sess, nil
	}

	log := slogx.FromContext(ctx).With("user_id", userID)
	submitted, err := s.controller.Submit(ctx, sess)
	if err != nil {
		log.Info("onboarding submission rejected", "state", submitted.State, "error", err)
		if saveErr := s.drafts.Save(ctx, submitted); saveErr != nil {
			return submitted, errors.Join(err, saveErr)
		}
		return submitted, err
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		log.Warn("failed to clear submitted draft", "error", err)
	}
	log.Info("onboarding submitted")
	return submitted, nil
}

// Discard drops the draft in progress. Nothing partial is persisted.
func (s *OnboardingService) Discard(ctx context.Context, userID string) error {
	return s.drafts.Delete(ctx, userID)
}

func (s *OnboardingService) Profile(ctx context.Context, userID string) (*onboarding.Profile, error) {
	return s.gateway.FetchProfile(ctx, userID)
}

// EditProfile applies patch to the stored profile and resubmits it.
func (s *OnboardingService) EditProfile(ctx context.Context, userID string, patch onboarding.Patch) (onboarding.Session, error) {
	steps := patch.Steps()
	if len(steps) == 0 {
		return onboarding.Session{}, fmt.Errorf("edit profile: %w", ErrEmptyPatch)
	}

	release, err := s.drafts.Acquire(ctx, userID)
	if err != nil {
		return onboarding.Session{}, err
	}
	defer release()

	sess, err := s.controller.Edit(ctx, userID, steps...)
	if err != nil {
		return sess, err
	}
	slogx.FromContext(ctx).Info("profile updated", "user_id", userID, "fields", len(steps))
	return sess, nil
}

// ErrEmptyPatch is returned for a profile edit that changes nothing.
var ErrEmptyPatch = errors.New("no profile fields to update")

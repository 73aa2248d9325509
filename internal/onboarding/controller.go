package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// State is the onboarding lifecycle position of a session.
type State string

const (
	StateDraftIncomplete State = "draft_incomplete"
	StateDraftComplete   State = "draft_complete"
	StateSubmitted       State = "submitted"
	StateEditable        State = "editable"
)

// Gateway persists profiles on behalf of an authenticated user.
type Gateway interface {
	FetchProfile(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, p Profile) error
}

// Session is one user's pass through the wizard. Controller methods take a
// Session and return an updated copy.
type Session struct {
	UserID string `json:"user_id"`
	State  State  `json:"state"`
	Draft  Draft  `json:"draft"`
	// Submitted is the last profile the gateway accepted.
	Submitted *Profile `json:"submitted,omitempty"`
	LastError string   `json:"last_error,omitempty"`
}

// Controller drives the onboarding state machine.
type Controller struct {
	gateway     Gateway
	accumulator Accumulator
}

// NewController returns a Controller writing through gateway. A nil now uses
// the wall clock.
func NewController(gateway Gateway, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{gateway: gateway, accumulator: Accumulator{Now: now}}
}

func (c *Controller) today() time.Time {
	return c.accumulator.today()
}

// Start begins an empty draft for userID.
func (c *Controller) Start(userID string) Session {
	return Session{UserID: userID, State: StateDraftIncomplete}
}

// Reopen returns a submitted session pre-populated from p.
func (c *Controller) Reopen(p Profile) Session {
	stored := p
	return Session{
		UserID:    p.UserID,
		State:     StateSubmitted,
		Draft:     DraftFromProfile(p, c.today()),
		Submitted: &stored,
	}
}

// Load reopens the stored profile of userID.
func (c *Controller) Load(ctx context.Context, userID string) (Session, error) {
	p, err := c.gateway.FetchProfile(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return c.Reopen(*p), nil
}

// Apply folds step into the session's draft. Editing a submitted profile
// moves it to editable.
func (c *Controller) Apply(s Session, step Step) (Session, error) {
	d, err := c.accumulator.Apply(s.Draft, step)
	if err != nil {
		return s, err
	}
	s.Draft = d
	s.LastError = ""
	switch {
	case s.State == StateSubmitted || s.State == StateEditable:
		s.State = StateEditable
	case d.Complete():
		s.State = StateDraftComplete
	default:
		s.State = StateDraftIncomplete
	}
	return s, nil
}

// Submit validates the draft and writes it through the gateway. On a gateway
// failure the session keeps its state and records the reason in LastError.
// A session that is already submitted is returned unchanged.
func (c *Controller) Submit(ctx context.Context, s Session) (Session, error) {
	if s.State == StateSubmitted {
		return s, nil
	}

	today := c.today()
	if v := ValidateAll(s.Draft, today); len(v) > 0 {
		verr := &ValidationError{Violations: v}
		s.LastError = verr.Error()
		return s, verr
	}

	p := s.Draft.Profile(s.UserID, today)
	p.OnboardingComplete = true
	if err := c.gateway.UpsertProfile(ctx, p); err != nil {
		var gerr *GatewayError
		if !errors.As(err, &gerr) {
			gerr = &GatewayError{Reason: err.Error(), Err: err}
		}
		s.LastError = gerr.Reason
		return s, gerr
	}

	return Session{
		UserID:    s.UserID,
		State:     StateSubmitted,
		Draft:     DraftFromProfile(p, today),
		Submitted: &p,
	}, nil
}

// Edit merges steps into the stored profile of userID and resubmits it.
// Nothing is written when a step or the merged profile is rejected.
func (c *Controller) Edit(ctx context.Context, userID string, steps ...Step) (Session, error) {
	s, err := c.Load(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if len(steps) == 0 {
		return s, nil
	}
	for _, step := range steps {
		if s, err = c.Apply(s, step); err != nil {
			return s, fmt.Errorf("edit profile: %w", err)
		}
	}
	return c.Submit(ctx, s)
}

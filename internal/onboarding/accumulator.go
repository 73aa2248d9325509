package onboarding

import "time"

// Accumulator folds wizard steps into a Draft.
type Accumulator struct {
	Now func() time.Time
}

// NewAccumulator returns an Accumulator that derives ages from the wall clock.
func NewAccumulator() Accumulator {
	return Accumulator{Now: time.Now}
}

func (a Accumulator) today() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// Apply returns a copy of d with step applied. d itself is never modified,
// and a rejected step returns d unchanged alongside a *StepError.
func (a Accumulator) Apply(d Draft, step Step) (Draft, error) {
	next := d.Clone()
	if err := step.apply(&next, a.today()); err != nil {
		return d, err
	}
	return next, nil
}

// ApplyAll applies steps in order and stops at the first rejection.
func (a Accumulator) ApplyAll(d Draft, steps ...Step) (Draft, error) {
	for _, s := range steps {
		var err error
		if d, err = a.Apply(d, s); err != nil {
			return d, err
		}
	}
	return d, nil
}

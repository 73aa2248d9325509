package onboarding

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pageza/nutrilens/backend/internal/schema"
)

// StepName identifies one wizard step.
type StepName string

const (
	StepFullName StepName = "name"
	StepBirthday StepName = "birthday"
	StepAge      StepName = "age"
	StepHeight   StepName = "height"
	StepWeight   StepName = "weight"
	StepGender   StepName = "gender"
	StepGoal     StepName = "goal"
	StepActivity StepName = "activity"
	StepDiet     StepName = "diet"
	StepSkipDiet StepName = "skip-diet"
)

// Order is the fixed order in which the wizard presents its steps.
var Order = []StepName{
	StepFullName,
	StepBirthday,
	StepAge,
	StepHeight,
	StepWeight,
	StepGender,
	StepGoal,
	StepActivity,
	StepDiet,
}

// Step is the input of one wizard step. Each step owns a fixed group of
// draft fields and never touches the others.
type Step interface {
	Name() StepName
	apply(d *Draft, today time.Time) error
}

// NewStep returns an empty step payload for name, ready to be decoded into.
func NewStep(name StepName) (Step, error) {
	switch name {
	case StepFullName:
		return &NameStep{}, nil
	case StepBirthday:
		return &BirthdayStep{}, nil
	case StepAge:
		return &AgeStep{}, nil
	case StepHeight:
		return &HeightStep{}, nil
	case StepWeight:
		return &WeightStep{}, nil
	case StepGender:
		return &GenderStep{}, nil
	case StepGoal:
		return &GoalStep{}, nil
	case StepActivity:
		return &ActivityStep{}, nil
	case StepDiet:
		return &DietStep{}, nil
	case StepSkipDiet:
		return &SkipDietStep{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

type NameStep struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s NameStep) Name() StepName { return StepFullName }

func (s NameStep) apply(d *Draft, _ time.Time) error {
	first := strings.TrimSpace(s.FirstName)
	if first == "" {
		return &StepError{Step: StepFullName, Message: "first name is required"}
	}
	d.FirstName = first
	d.LastName = strings.TrimSpace(s.LastName)
	return nil
}

// BirthdayStep records the date of birth and derives the age from it. A
// manually entered age survives only as long as the date stays the same.
type BirthdayStep struct {
	DateOfBirth string `json:"date_of_birth"`
}

func (s BirthdayStep) Name() StepName { return StepBirthday }

func (s BirthdayStep) apply(d *Draft, today time.Time) error {
	dob, err := ParseDate(s.DateOfBirth)
	if err != nil {
		return &StepError{Step: StepBirthday, Message: "date of birth must be a valid YYYY-MM-DD date"}
	}
	if dob.After(today) {
		return &StepError{Step: StepBirthday, Message: "date of birth cannot be in the future"}
	}
	normalized := dob.Format(DateLayout)
	if normalized != d.DateOfBirth || !d.AgeOverridden {
		age := DerivedAge(dob, today)
		d.Age = &age
		d.AgeOverridden = false
	}
	d.DateOfBirth = normalized
	return nil
}

// AgeStep is the age confirmation screen. The range is enforced at submit
// time so the message can name the bounds.
type AgeStep struct {
	Age int `json:"age"`
}

func (s AgeStep) Name() StepName { return StepAge }

func (s AgeStep) apply(d *Draft, _ time.Time) error {
	if s.Age <= 0 {
		return &StepError{Step: StepAge, Message: "age must be a positive number"}
	}
	age := s.Age
	d.Age = &age
	d.AgeOverridden = true
	return nil
}

// HeightStep accepts centimeters or feet and inches. Imperial input is
// converted and stored in centimeters.
type HeightStep struct {
	Unit        string  `json:"unit"`
	Centimeters float64 `json:"centimeters,omitempty"`
	Feet        int     `json:"feet,omitempty"`
	Inches      int     `json:"inches,omitempty"`
}

func (s HeightStep) Name() StepName { return StepHeight }

func (s HeightStep) apply(d *Draft, _ time.Time) error {
	var cm float64
	switch s.Unit {
	case schema.HeightUnitCentimeters:
		if s.Centimeters < schema.MinHeightCentimeters || s.Centimeters > schema.MaxHeightCentimeters {
			return &StepError{Step: StepHeight, Message: fmt.Sprintf("height must be between %d and %d cm",
				schema.MinHeightCentimeters, schema.MaxHeightCentimeters)}
		}
		cm = s.Centimeters
	case schema.HeightUnitFeetInches:
		if s.Feet < schema.MinHeightFeet || s.Feet > schema.MaxHeightFeet ||
			s.Inches < 0 || s.Inches > schema.MaxHeightInches {
			return &StepError{Step: StepHeight, Message: fmt.Sprintf("height must be between %d and %d ft with 0 to %d in",
				schema.MinHeightFeet, schema.MaxHeightFeet, schema.MaxHeightInches)}
		}
		cm = schema.FeetInchesToCentimeters(s.Feet, s.Inches)
	default:
		return &StepError{Step: StepHeight, Message: "height unit must be one of: " + schema.Allowed(schema.FieldHeightUnit)}
	}
	d.Height = &cm
	d.HeightUnit = schema.HeightUnitCentimeters
	return nil
}

type WeightStep struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

func (s WeightStep) Name() StepName { return StepWeight }

func (s WeightStep) apply(d *Draft, _ time.Time) error {
	var lo, hi float64
	switch s.Unit {
	case schema.WeightUnitKilograms:
		lo, hi = schema.MinWeightKilograms, schema.MaxWeightKilograms
	case schema.WeightUnitPounds:
		lo, hi = schema.MinWeightPounds, schema.MaxWeightPounds
	default:
		return &StepError{Step: StepWeight, Message: "weight unit must be one of: " + schema.Allowed(schema.FieldWeightUnit)}
	}
	if s.Value < lo || s.Value > hi {
		return &StepError{Step: StepWeight, Message: fmt.Sprintf("weight must be between %g and %g %s", lo, hi, s.Unit)}
	}
	w := s.Value
	d.Weight = &w
	d.WeightUnit = s.Unit
	return nil
}

type GenderStep struct {
	Gender string `json:"gender"`
}

func (s GenderStep) Name() StepName { return StepGender }

func (s GenderStep) apply(d *Draft, _ time.Time) error {
	if !schema.IsMember(schema.FieldGender, s.Gender) {
		return &StepError{Step: StepGender, Message: "gender must be one of: " + schema.Allowed(schema.FieldGender)}
	}
	d.Gender = s.Gender
	return nil
}

type GoalStep struct {
	HealthGoal string `json:"health_goal"`
}

func (s GoalStep) Name() StepName { return StepGoal }

func (s GoalStep) apply(d *Draft, _ time.Time) error {
	if !schema.IsMember(schema.FieldHealthGoal, s.HealthGoal) {
		return &StepError{Step: StepGoal, Message: "health goal must be one of: " + schema.Allowed(schema.FieldHealthGoal)}
	}
	d.HealthGoal = s.HealthGoal
	return nil
}

type ActivityStep struct {
	ActivityLevel string `json:"activity_level"`
}

func (s ActivityStep) Name() StepName { return StepActivity }

func (s ActivityStep) apply(d *Draft, _ time.Time) error {
	if !schema.IsMember(schema.FieldActivityLevel, s.ActivityLevel) {
		return &StepError{Step: StepActivity, Message: "activity level must be one of: " + schema.Allowed(schema.FieldActivityLevel)}
	}
	d.ActivityLevel = s.ActivityLevel
	return nil
}

// DietStep replaces the diet preference set. Duplicates collapse onto their
// first occurrence.
type DietStep struct {
	Preferences []string `json:"preferences"`
}

func (s DietStep) Name() StepName { return StepDiet }

func (s DietStep) apply(d *Draft, _ time.Time) error {
	if len(s.Preferences) == 0 {
		return &StepError{Step: StepDiet, Message: "select at least one diet preference"}
	}
	prefs := make([]string, 0, len(s.Preferences))
	for _, p := range s.Preferences {
		if !schema.IsMember(schema.FieldDietPreferences, p) {
			return &StepError{Step: StepDiet, Message: fmt.Sprintf("unknown diet preference %q, allowed: %s",
				p, schema.Allowed(schema.FieldDietPreferences))}
		}
		if !slices.Contains(prefs, p) {
			prefs = append(prefs, p)
		}
	}
	d.DietPreferences = prefs
	return nil
}

// SkipDietStep is the diet screen's skip button.
type SkipDietStep struct{}

func (SkipDietStep) Name() StepName { return StepSkipDiet }

func (SkipDietStep) apply(d *Draft, today time.Time) error {
	return DietStep{Preferences: []string{schema.DietNone}}.apply(d, today)
}

package onboarding

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the wire format for dates of birth.
const DateLayout = "2006-01-02"

// Profile is a validated nutrition profile as exchanged with the gateway.
type Profile struct {
	UserID             string   `json:"user_id"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name,omitempty"`
	DateOfBirth        string   `json:"date_of_birth"`
	Age                int      `json:"age"`
	AgeOverridden      bool     `json:"age_overridden"`
	Gender             string   `json:"gender"`
	Height             float64  `json:"height"`
	HeightUnit         string   `json:"height_unit"`
	Weight             float64  `json:"weight"`
	WeightUnit         string   `json:"weight_unit"`
	HealthGoal         string   `json:"health_goal"`
	ActivityLevel      string   `json:"activity_level"`
	DietPreferences    []string `json:"diet_preferences"`
	OnboardingComplete bool     `json:"onboarding_complete"`
}

// Draft is a profile under construction. Unset fields are empty strings or
// nil pointers.
type Draft struct {
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	DateOfBirth     string   `json:"date_of_birth,omitempty"`
	Age             *int     `json:"age,omitempty"`
	AgeOverridden   bool     `json:"age_overridden,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	HeightUnit      string   `json:"height_unit,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	WeightUnit      string   `json:"weight_unit,omitempty"`
	HealthGoal      string   `json:"health_goal,omitempty"`
	ActivityLevel   string   `json:"activity_level,omitempty"`
	DietPreferences []string `json:"diet_preferences,omitempty"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	out := d
	if d.Age != nil {
		age := *d.Age
		out.Age = &age
	}
	if d.Height != nil {
		h := *d.Height
		out.Height = &h
	}
	if d.Weight != nil {
		w := *d.Weight
		out.Weight = &w
	}
	out.DietPreferences = slices.Clone(d.DietPreferences)
	return out
}

// Complete reports whether every required field has been supplied. It says
// nothing about whether the values are valid.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.FirstName) != "" &&
		d.DateOfBirth != "" &&
		d.Age != nil &&
		d.Gender != "" &&
		d.Height != nil && d.HeightUnit != "" &&
		d.Weight != nil && d.WeightUnit != "" &&
		d.HealthGoal != "" &&
		d.ActivityLevel != "" &&
		len(d.DietPreferences) > 0
}

// EffectiveAge returns the manually entered or derived age, falling back to
// deriving it from the date of birth.
func (d Draft) EffectiveAge(today time.Time) (int, bool) {
	if d.Age != nil {
		return *d.Age, true
	}
	dob, err := ParseDate(d.DateOfBirth)
	if err != nil {
		return 0, false
	}
	return DerivedAge(dob, today), true
}

// Profile converts a draft that has passed validation into a Profile.
func (d Draft) Profile(userID string, today time.Time) Profile {
	age, _ := d.EffectiveAge(today)
	p := Profile{
		UserID:          userID,
		FirstName:       strings.TrimSpace(d.FirstName),
		LastName:        strings.TrimSpace(d.LastName),
		DateOfBirth:     d.DateOfBirth,
		Age:             age,
		AgeOverridden:   d.AgeOverridden,
		Gender:          d.Gender,
		HeightUnit:      d.HeightUnit,
		WeightUnit:      d.WeightUnit,
		HealthGoal:      d.HealthGoal,
		ActivityLevel:   d.ActivityLevel,
		DietPreferences: slices.Clone(d.DietPreferences),
	}
	if d.Height != nil {
		p.Height = *d.Height
	}
	if d.Weight != nil {
		p.Weight = *d.Weight
	}
	return p
}

// AgeOn returns the age to use on day: the stored age when the user entered
// it by hand, otherwise the age derived from the date of birth.
func (p Profile) AgeOn(day time.Time) int {
	if p.AgeOverridden {
		return p.Age
	}
	dob, err := ParseDate(p.DateOfBirth)
	if err != nil {
		return p.Age
	}
	return DerivedAge(dob, day)
}

// DraftFromProfile pre-populates a draft from a stored profile. A derived
// age is recomputed for today; a manual one is kept.
func DraftFromProfile(p Profile, today time.Time) Draft {
	age := p.AgeOn(today)
	height := p.Height
	weight := p.Weight
	d := Draft{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		DateOfBirth:     p.DateOfBirth,
		Age:             &age,
		AgeOverridden:   p.AgeOverridden,
		Gender:          p.Gender,
		Height:          &height,
		HeightUnit:      p.HeightUnit,
		Weight:          &weight,
		WeightUnit:      p.WeightUnit,
		HealthGoal:      p.HealthGoal,
		ActivityLevel:   p.ActivityLevel,
		DietPreferences: slices.Clone(p.DietPreferences),
	}
	return d
}

// ParseDate parses a YYYY-MM-DD calendar date. Impossible dates such as
// 2023-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DerivedAge returns the whole number of years elapsed between dob and today.
func DerivedAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

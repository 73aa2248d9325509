package onboarding

import (
	"fmt"
	"strings"
	"time"

	"github.com/pageza/nutrilens/backend/internal/schema"
)

// Violation is one failed check. Field uses the profile's wire names.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a draft.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validate reports the first failed check of d.
func Validate(d Draft, today time.Time) Result {
	if v := ValidateAll(d, today); len(v) > 0 {
		return Result{Message: v[0].Message}
	}
	return Result{Valid: true}
}

// ValidateAll runs every check against d in a fixed order and returns the
// failures in that order. Each field contributes at most one violation.
func ValidateAll(d Draft, today time.Time) []Violation {
	var out []Violation
	add := func(field, msg string) {
		out = append(out, Violation{Field: field, Message: msg})
	}

	if strings.TrimSpace(d.FirstName) == "" {
		add("first_name", "First name is required.")
	}

	dob, err := ParseDate(d.DateOfBirth)
	if err != nil || dob.After(today) {
		add("date_of_birth", "Valid date of birth is required.")
	}

	age, ok := d.EffectiveAge(today)
	if !ok || !schema.AgeInRange(age) {
		add("age", fmt.Sprintf("Age must be between %d and %d.", schema.MinAge, schema.MaxAge))
	}

	if !schema.IsMember(schema.FieldGender, d.Gender) {
		add("gender", fmt.Sprintf("Valid gender is required (%s).",
			strings.Join(schema.Members(schema.FieldGender), " or ")))
	}

	if d.Height == nil || *d.Height <= 0 {
		add("height", "Valid height is required.")
	}
	if !schema.IsMember(schema.FieldHeightUnit, d.HeightUnit) {
		add("height_unit", fmt.Sprintf("Valid height unit is required (%s).",
			strings.Join(schema.Members(schema.FieldHeightUnit), " or ")))
	}

	if d.Weight == nil || *d.Weight <= 0 {
		add("weight", "Valid weight is required.")
	}
	if !schema.IsMember(schema.FieldWeightUnit, d.WeightUnit) {
		add("weight_unit", fmt.Sprintf("Valid weight unit is required (%s).",
			strings.Join(schema.Members(schema.FieldWeightUnit), " or ")))
	}

	if !schema.IsMember(schema.FieldHealthGoal, d.HealthGoal) {
		add("health_goal", "Valid health goal is required. Allowed: "+schema.Allowed(schema.FieldHealthGoal)+".")
	}

	if !schema.IsMember(schema.FieldActivityLevel, d.ActivityLevel) {
		add("activity_level", "Valid activity level is required. Allowed: "+schema.Allowed(schema.FieldActivityLevel)+".")
	}

	if len(d.DietPreferences) == 0 {
		add("diet_preferences", "At least one diet preference is required.")
	} else {
		var invalid []string
		for _, p := range d.DietPreferences {
			if !schema.IsMember(schema.FieldDietPreferences, p) {
				invalid = append(invalid, p)
			}
		}
		if len(invalid) > 0 {
			add("diet_preferences", fmt.Sprintf("Invalid diet preferences: %s. Allowed: %s.",
				strings.Join(invalid, ", "), schema.Allowed(schema.FieldDietPreferences)))
		}
	}

	return out
}

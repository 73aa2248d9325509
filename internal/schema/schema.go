package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Field names a profile field that draws its value from a closed set.
type Field string

const (
	FieldGender          Field = "gender"
	FieldHeightUnit      Field = "height_unit"
	FieldWeightUnit      Field = "weight_unit"
	FieldHealthGoal      Field = "health_goal"
	FieldActivityLevel   Field = "activity_level"
	FieldDietPreferences Field = "diet_preferences"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	HeightUnitCentimeters = "cm"
	HeightUnitFeetInches  = "ft/inches"

	WeightUnitKilograms = "kg"
	WeightUnitPounds    = "lbs"

	GoalLoseWeight     = "lose_weight"
	GoalMaintainWeight = "maintain_weight"
	GoalGainWeight     = "gain_weight"

	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"

	DietNone          = "none"
	DietVegetarian    = "vegetarian"
	DietVegan         = "vegan"
	DietKeto          = "keto"
	DietNonVegetarian = "non-vegetarian"
)

// Age bounds are inclusive.
const (
	MinAge = 18
	MaxAge = 120
)

// Ranges accepted by the individual wizard steps. The final validation only
// requires height and weight to be positive.
const (
	MinHeightCentimeters = 100
	MaxHeightCentimeters = 250
	MinHeightFeet        = 3
	MaxHeightFeet        = 8
	MaxHeightInches      = 11

	MinWeightKilograms = 20
	MaxWeightKilograms = 300
	MinWeightPounds    = 44
	MaxWeightPounds    = 660
)

const (
	centimetersPerFoot = 30.48
	centimetersPerInch = 2.54
	kilogramsPerPound  = 0.45359237
)

var members = map[Field][]string{
	FieldGender:          {GenderMale, GenderFemale},
	FieldHeightUnit:      {HeightUnitCentimeters, HeightUnitFeetInches},
	FieldWeightUnit:      {WeightUnitKilograms, WeightUnitPounds},
	FieldHealthGoal:      {GoalLoseWeight, GoalMaintainWeight, GoalGainWeight},
	FieldActivityLevel:   {ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive},
	FieldDietPreferences: {DietNone, DietVegetarian, DietVegan, DietKeto, DietNonVegetarian},
}

// Members returns the valid values for field in their canonical order.
// Asking for a field without a closed set is a programming error.
func Members(field Field) []string {
	m, ok := members[field]
	if !ok {
		panic(fmt.Sprintf("schema: no closed set for field %q", field))
	}
	return slices.Clone(m)
}

// IsMember reports whether value belongs to field's closed set.
func IsMember(field Field, value string) bool {
	return slices.Contains(Members(field), value)
}

// Allowed renders field's members as a comma separated list for messages.
func Allowed(field Field) string {
	return strings.Join(Members(field), ", ")
}

// Fields lists every field that has a closed set.
func Fields() []Field {
	return []Field{
		FieldGender,
		FieldHeightUnit,
		FieldWeightUnit,
		FieldHealthGoal,
		FieldActivityLevel,
		FieldDietPreferences,
	}
}

// AgeInRange reports whether age is within the inclusive age bounds.
func AgeInRange(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// FeetInchesToCentimeters converts an imperial height to centimeters rounded
// to two decimals.
func FeetInchesToCentimeters(feet, inches int) float64 {
	return round2(float64(feet)*centimetersPerFoot + float64(inches)*centimetersPerInch)
}

// PoundsToKilograms converts a weight in pounds to kilograms.
func PoundsToKilograms(lbs float64) float64 {
	return lbs * kilogramsPerPound
}

// KilogramsOf returns weight expressed in kilograms.
func KilogramsOf(weight float64, unit string) float64 {
	if unit == WeightUnitPounds {
		return PoundsToKilograms(weight)
	}
	return weight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

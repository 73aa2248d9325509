package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMembers(t *testing.T) {
	assert.Equal(t, []string{"male", "female"}, Members(FieldGender))
	assert.Equal(t, []string{"cm", "ft/inches"}, Members(FieldHeightUnit))
	assert.Equal(t, []string{"kg", "lbs"}, Members(FieldWeightUnit))
	assert.Equal(t, []string{"none", "vegetarian", "vegan", "keto", "non-vegetarian"}, Members(FieldDietPreferences))
}

func TestMembersReturnsCopy(t *testing.T) {
	m := Members(FieldHealthGoal)
	m[0] = "bulk"
	assert.True(t, IsMember(FieldHealthGoal, GoalLoseWeight))
	assert.False(t, IsMember(FieldHealthGoal, "bulk"))
}

func TestMembersUnknownFieldPanics(t *testing.T) {
	assert.Panics(t, func() { Members(Field("eye_color")) })
}

func TestEveryFieldHasMembers(t *testing.T) {
	for _, f := range Fields() {
		assert.NotEmpty(t, Members(f), f)
	}
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, "lose_weight, maintain_weight, gain_weight", Allowed(FieldHealthGoal))
}

func TestAgeInRange(t *testing.T) {
	assert.False(t, AgeInRange(17))
	assert.True(t, AgeInRange(18))
	assert.True(t, AgeInRange(120))
	assert.False(t, AgeInRange(121))
}

func TestFeetInchesToCentimeters(t *testing.T) {
	assert.InDelta(t, 180.34, FeetInchesToCentimeters(5, 11), 1e-9)
	assert.InDelta(t, 152.4, FeetInchesToCentimeters(5, 0), 1e-9)
}

func TestKilogramsOf(t *testing.T) {
	assert.Equal(t, 70.0, KilogramsOf(70, WeightUnitKilograms))
	assert.InDelta(t, 68.04, KilogramsOf(150, WeightUnitPounds), 0.01)
}

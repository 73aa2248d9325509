package onboarding

// Patch is a partial profile edit. Each non-nil member is applied as the
// corresponding wizard step, in wizard order.
type Patch struct {
	Name     *NameStep     `json:"name,omitempty"`
	Birthday *BirthdayStep `json:"birthday,omitempty"`
	Age      *AgeStep      `json:"age,omitempty"`
	Height   *HeightStep   `json:"height,omitempty"`
	Weight   *WeightStep   `json:"weight,omitempty"`
	Gender   *GenderStep   `json:"gender,omitempty"`
	Goal     *GoalStep     `json:"goal,omitempty"`
	Activity *ActivityStep `json:"activity,omitempty"`
	Diet     *DietStep     `json:"diet,omitempty"`
}

// Steps lists the edits carried by p.
func (p Patch) Steps() []Step {
	var steps []Step
	if p.Name != nil {
		steps = append(steps, *p.Name)
	}
	if p.Birthday != nil {
		steps = append(steps, *p.Birthday)
	}
	if p.Age != nil {
		steps = append(steps, *p.Age)
	}
	if p.Height != nil {
		steps = append(steps, *p.Height)
	}
	if p.Weight != nil {
		steps = append(steps, *p.Weight)
	}
	if p.Gender != nil {
		steps = append(steps, *p.Gender)
	}
	if p.Goal != nil {
		steps = append(steps, *p.Goal)
	}
	if p.Activity != nil {
		steps = append(steps, *p.Activity)
	}
	if p.Diet != nil {
		steps = append(steps, *p.Diet)
	}
	return steps
}

package nutrition

import "encoding/json"

// Verdict is the qualitative label a food gets against a goal.
type Verdict int

const (
	VerdictGeneral Verdict = iota
	VerdictHighProtein
	VerdictLowFat
	VerdictBulking
	VerdictCutting
)

// Fixed classification thresholds.
const (
	HighProteinMinGrams = 15
	LowFatMaxGrams      = 5
	BulkingMinCalories  = 300
	CuttingMaxCalories  = 150
)

var verdictLabels = map[Verdict]string{
	VerdictGeneral:     "General fitness food",
	VerdictHighProtein: "High-protein food",
	VerdictLowFat:      "Low-fat choice",
	VerdictBulking:     "Great for bulking",
	VerdictCutting:     "Suitable for cutting",
}

var verdictBadges = map[Verdict]string{
	VerdictGeneral:     "ℹ️ General fitness food",
	VerdictHighProtein: "✅ High-protein food 💪",
	VerdictLowFat:      "✅ Low-fat choice 🥗",
	VerdictBulking:     "✅ Great for bulking 🍚",
	VerdictCutting:     "✅ Suitable for cutting 🥦",
}

// String returns the plain label, e.g. "High-protein food".
func (v Verdict) String() string {
	if s, ok := verdictLabels[v]; ok {
		return s
	}
	return verdictLabels[VerdictGeneral]
}

// Badge returns the label decorated for display in the text summary.
func (v Verdict) Badge() string {
	if s, ok := verdictBadges[v]; ok {
		return s
	}
	return verdictBadges[VerdictGeneral]
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Classify returns the verdict for m under goal g. Only the check belonging
// to the selected goal is consulted; anything that does not pass it is a
// general fitness food.
func Classify(m Macros, g Goal) Verdict {
	switch {
	case g == GoalHighProtein && m.Protein >= HighProteinMinGrams:
		return VerdictHighProtein
	case g == GoalLowFat && m.Fat <= LowFatMaxGrams:
		return VerdictLowFat
	case g == GoalBulking && m.Calories >= BulkingMinCalories:
		return VerdictBulking
	case g == GoalCutting && m.Calories <= CuttingMaxCalories:
		return VerdictCutting
	}
	return VerdictGeneral
}

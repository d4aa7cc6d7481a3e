package nutrition

import (
	"encoding/json"
	"fmt"

	"github.com/korjavin/fitnourish/internal/fold"
)

// Goal is the fitness objective a user picks alongside a food.
type Goal int

const (
	GoalNone Goal = iota
	GoalHighProtein
	GoalLowFat
	GoalBulking
	GoalCutting
)

// Goals lists every goal in the order the UI offers them.
var Goals = []Goal{GoalNone, GoalHighProtein, GoalLowFat, GoalBulking, GoalCutting}

var goalLabels = map[Goal]string{
	GoalNone:        "None",
	GoalHighProtein: "High-Protein",
	GoalLowFat:      "Low-Fat",
	GoalBulking:     "Bulking",
	GoalCutting:     "Cutting",
}

// String returns the display label, e.g. "High-Protein".
func (g Goal) String() string {
	if s, ok := goalLabels[g]; ok {
		return s
	}
	return fmt.Sprintf("Goal(%d)", int(g))
}

// ParseGoal accepts a goal label regardless of case, spacing or hyphen
// style. The empty string means GoalNone.
func ParseGoal(s string) (Goal, error) {
	key := fold.Key(s)
	if key == "" {
		return GoalNone, nil
	}
	for _, g := range Goals {
		if fold.Key(goalLabels[g]) == key {
			return g, nil
		}
	}
	return GoalNone, fmt.Errorf("unknown goal %q", s)
}

func (g Goal) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Goal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseGoal(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

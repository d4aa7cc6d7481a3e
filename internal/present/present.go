// Package present runs the lookup-and-render flow behind every user
// interaction: find the selected food, summarise it, classify it against the
// selected goal and chart its macros.
package present

import (
	"fmt"
	"strings"

	"github.com/korjavin/fitnourish/internal/chart"
	"github.com/korjavin/fitnourish/internal/nutrition"
)

// Kind tells the caller which path the flow took.
type Kind string

const (
	KindOK               Kind = "ok"
	KindMissingSelection Kind = "missing_selection"
	KindNotFound         Kind = "not_found"
)

// MissingSelectionText is shown when no food has been chosen.
const MissingSelectionText = "❌ Please select a food item."

// Finder is the lookup the flow needs; *dataset.Dataset satisfies it.
type Finder interface {
	Lookup(name string) (nutrition.Record, bool)
}

// Observer is notified of every completed presentation. It may be nil.
type Observer interface {
	Presented(kind Kind, goal nutrition.Goal, verdict nutrition.Verdict)
}

// Result is what the flow hands back to a presentation adapter. Chart is nil
// unless Kind is KindOK.
type Result struct {
	Kind    Kind               `json:"kind"`
	Text    string             `json:"text"`
	Food    *nutrition.Record  `json:"food,omitempty"`
	Macros  *nutrition.Macros  `json:"macros,omitempty"`
	Goal    nutrition.Goal     `json:"goal"`
	Verdict *nutrition.Verdict `json:"verdict,omitempty"`
	Chart   *chart.Chart       `json:"chart,omitempty"`
}

// Presenter is stateless apart from its read-only Finder; one value serves
// any number of concurrent callers.
type Presenter struct {
	finder   Finder
	observer Observer
}

// New returns a Presenter over f. obs may be nil.
func New(f Finder, obs Observer) *Presenter {
	return &Presenter{finder: f, observer: obs}
}

// Present never fails: every outcome is a displayable Result.
func (p *Presenter) Present(name string, goal nutrition.Goal) Result {
	res := p.present(name, goal)
	if p.observer != nil {
		var v nutrition.Verdict
		if res.Verdict != nil {
			v = *res.Verdict
		}
		p.observer.Presented(res.Kind, goal, v)
	}
	return res
}

func (p *Presenter) present(name string, goal nutrition.Goal) Result {
	if name == "" {
		return Result{Kind: KindMissingSelection, Text: MissingSelectionText, Goal: goal}
	}

	rec, ok := p.finder.Lookup(name)
	if !ok {
		return Result{Kind: KindNotFound, Text: NotFoundText(name), Goal: goal}
	}

	m := rec.Macros()
	v := nutrition.Classify(m, goal)
	c := chart.Render(rec)
	return Result{
		Kind:    KindOK,
		Text:    Summary(rec, v),
		Food:    &rec,
		Macros:  &m,
		Goal:    goal,
		Verdict: &v,
		Chart:   &c,
	}
}

// NotFoundText is shown when name has no record.
func NotFoundText(name string) string {
	return "❌ Food item not found: " + name
}

// Summary formats rec as a markdown block followed by the verdict badge.
// Nutrient values are printed as they appear in the source table.
func Summary(rec nutrition.Record, v nutrition.Verdict) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### **%s**  \n", rec.Name)
	fmt.Fprintf(&sb, "*Source:* %s  \n\n", rec.Source)
	sb.WriteString("| Nutrient | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Calories | %s kcal |\n", rec.Calories)
	fmt.Fprintf(&sb, "| Protein | %s g |\n", rec.Protein)
	fmt.Fprintf(&sb, "| Fat | %s g |\n", rec.Fat)
	fmt.Fprintf(&sb, "| Carbohydrates | %s g |\n\n", rec.Carbs)
	sb.WriteString(v.Badge())
	return sb.String()
}

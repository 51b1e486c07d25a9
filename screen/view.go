package screen

import (
	"strconv"
)

// Screen names
const (
	ScreenDashboard = "dashboard"
	ScreenAdvanced  = "advanced"
)

// Navigation targets of the dashboard quick actions
const (
	TargetComplaints = "complaints"
	TargetRoutes     = "routes"
	TargetUsers      = "users"
	TargetAnalytics  = "analytics"
	TargetExport     = "export"
)

// View is a framework-neutral description of one rendered section
type View struct {
	Screen  string  `json:"screen"`
	Section Section `json:"section"`
	Title   string  `json:"title"`
	Cards   []Card  `json:"cards"`
}

type Card struct {
	Title   string   `json:"title"`
	Stats   []Stat   `json:"stats,omitempty"`
	Series  []Series `json:"series,omitempty"`
	Items   []Item   `json:"items,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Stat is a labelled display value. Change is an optional secondary value.
type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
}

// Series is one chart dataset. Labels and Points have the same length.
type Series struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels"`
	Points []float64 `json:"points"`
}

type Item struct {
	Title  string `json:"title"`
	Badge  string `json:"badge,omitempty"`
	Detail string `json:"detail,omitempty"`
	Fields []Stat `json:"fields,omitempty"`
}

// Action navigates to a named screen or report
type Action struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Card returns the card with the given title and whether it exists
func (v View) Card(title string) (Card, bool) {
	for _, c := range v.Cards {
		if c.Title == title {
			return c, true
		}
	}
	return Card{}, false
}

// Stat returns the value of the stat with the given label, or ""
func (c Card) Stat(label string) string {
	for _, s := range c.Stats {
		if s.Label == label {
			return s.Value
		}
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func num(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func flt(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func withUnit(v string, unit string) string {
	if v == "" {
		return ""
	}
	return v + unit
}

func pct(v *float64) string {
	return withUnit(flt(v), "%")
}

func signedPct(v *float64) string {
	if v == nil {
		return ""
	}
	if *v >= 0 {
		return "+" + pct(v)
	}
	return pct(v)
}

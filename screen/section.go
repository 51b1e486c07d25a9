package screen

import (
	"fmt"
	"sync"

	"transit-dashboard/utils"
)

// ErrUnknownSection is returned when a selector is asked for a value outside its set
var ErrUnknownSection = utils.ErrInvalidSection

// Section names one mutually exclusive view of a screen
type Section string

// Dashboard tabs
const (
	TabOverview  Section = "overview"
	TabAnalytics Section = "analytics"
	TabReports   Section = "reports"
	TabSettings  Section = "settings"
)

// Advanced analytics sections
const (
	SectionPredictive Section = "predictive"
	SectionGeographic Section = "geographic"
	SectionComplaints Section = "complaints"
	SectionSystem     Section = "system"
)

var (
	DashboardTabs    = []Section{TabOverview, TabAnalytics, TabReports, TabSettings}
	AdvancedSections = []Section{SectionPredictive, SectionGeographic, SectionComplaints, SectionSystem}
)

// Selector holds one value of a fixed set of sections
type Selector struct {
	mu      sync.RWMutex
	options []Section
	current int
}

// NewSelector starts on the first option
func NewSelector(options []Section) *Selector {
	opts := make([]Section, len(options))
	copy(opts, options)
	return &Selector{options: opts}
}

func NewDashboardSelector() *Selector { return NewSelector(DashboardTabs) }

func NewAdvancedSelector() *Selector { return NewSelector(AdvancedSections) }

// Current returns the selected section, or "" for an empty selector
func (s *Selector) Current() Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.current]
}

// Options returns a copy of the set
func (s *Selector) Options() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Section, len(s.options))
	copy(out, s.options)
	return out
}

// Select switches to sec. Unknown values leave the selection unchanged.
func (s *Selector) Select(sec Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, opt := range s.options {
		if opt == sec {
			s.current = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSection, sec)
}

// Next moves to the following section, wrapping around
func (s *Selector) Next() Section {
	return s.step(1)
}

// Prev moves to the preceding section, wrapping around
func (s *Selector) Prev() Section {
	return s.step(-1)
}

func (s *Selector) step(delta int) Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.options)
	if n == 0 {
		return ""
	}
	s.current = ((s.current+delta)%n + n) % n
	return s.options[s.current]
}

// ParseSection resolves name against options. An empty name picks the first option.
func ParseSection(name string, options []Section) (Section, error) {
	if name == "" && len(options) > 0 {
		return options[0], nil
	}
	for _, opt := range options {
		if string(opt) == name {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

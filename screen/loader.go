package screen

import (
	"context"
	"errors"
	"sync"

	"transit-dashboard/model"

	"github.com/rs/zerolog/log"
)

// Alert messages shown when a screen fails to load, whatever the cause.
// The dashboard is operated in Arabic.
const (
	AlertDashboard = "فشل في تحميل بيانات لوحة التحكم"
	AlertAdvanced  = "فشل في تحميل البيانات التحليلية المتقدمة"
)

// ErrEmptySnapshot is reported when a source returns neither a snapshot nor an error
var ErrEmptySnapshot = errors.New("source returned no snapshot")

// Source produces a fresh snapshot for a screen
type Source[T any] interface {
	Fetch(ctx context.Context) (*T, error)
}

// SourceFunc adapts a function to Source
type SourceFunc[T any] func(ctx context.Context) (*T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context) (*T, error) {
	return f(ctx)
}

// State is a point-in-time copy of a loader's fields
type State[T any] struct {
	Loading    bool
	Refreshing bool
	Snapshot   *T
	Alert      string
}

// Loader fetches snapshots for one screen and remembers the last good one.
// A failed load records the screen's alert and keeps the previous snapshot.
type Loader[T any] struct {
	mu         sync.Mutex
	source     Source[T]
	alertText  string
	name       string
	loading    bool
	refreshing bool
	snapshot   *T
	alert      string
}

// NewLoader creates a loader that reports failures with alertText
func NewLoader[T any](name string, source Source[T], alertText string) *Loader[T] {
	return &Loader[T]{name: name, source: source, alertText: alertText}
}

func NewDashboardLoader(source Source[model.DashboardSnapshot]) *Loader[model.DashboardSnapshot] {
	return NewLoader("dashboard", source, AlertDashboard)
}

func NewAdvancedLoader(source Source[model.AdvancedAnalyticsSnapshot]) *Loader[model.AdvancedAnalyticsSnapshot] {
	return NewLoader("advanced", source, AlertAdvanced)
}

// Load fetches a snapshot and stores it
func (l *Loader[T]) Load(ctx context.Context) error {
	l.Begin()
	snap, err := l.source.Fetch(ctx)
	return l.Finish(snap, err)
}

// Refresh runs exactly one Load with the refreshing flag raised
func (l *Loader[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.refreshing = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.refreshing = false
		l.mu.Unlock()
	}()

	return l.Load(ctx)
}

// Begin marks a load as in flight. Callers that fetch on their own must
// follow it with Finish.
func (l *Loader[T]) Begin() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = true
}

// BeginRefresh is Begin for a user-triggered reload
func (l *Loader[T]) BeginRefresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = true
	l.refreshing = true
}

// Finish ends a load started with Begin or BeginRefresh and returns err,
// or ErrEmptySnapshot when both snap and err are nil.
func (l *Loader[T]) Finish(snap *T, err error) error {
	if err == nil && snap == nil {
		err = ErrEmptySnapshot
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	l.refreshing = false

	if err != nil {
		log.Error().Err(err).Str("screen", l.name).Msg("Failed to load snapshot")
		l.alert = l.alertText
		return err
	}

	l.snapshot = snap
	l.alert = ""
	return nil
}

// DismissAlert clears the last alert
func (l *Loader[T]) DismissAlert() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alert = ""
}

func (l *Loader[T]) Snapshot() *T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State[T]{
		Loading:    l.loading,
		Refreshing: l.refreshing,
		Snapshot:   l.snapshot,
		Alert:      l.alert,
	}
}

package stopwatch

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/yatl/kit/platform/errors"
)

// Timer records a single start instant and any number of laps measured from it.
//
// The zero value is an unstarted timer reading the real-time clock.
// A Timer is not safe for concurrent use.
type Timer struct {
	clock   clock.Clock
	started *time.Time
	laps    []time.Duration
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the clock the timer reads. A nil clock keeps the real-time clock.
func WithClock(c clock.Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

// New returns an unstarted timer with no laps.
func New(opts ...Option) *Timer {
	t := &Timer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) now() time.Time {
	if t.clock == nil {
		t.clock = clock.New()
	}
	return t.clock.Now()
}

// Start records the current time as the start instant.
// It returns ErrAlreadyStarted if the timer was started before.
func (t *Timer) Start() error {
	if t.started != nil {
		return &errors.Error{Op: opStart, Err: ErrAlreadyStarted}
	}
	now := t.now()
	t.started = &now
	return nil
}

// IsStarted returns true if Start has succeeded.
func (t *Timer) IsStarted() bool { return t.started != nil }

// StartTime returns the instant recorded by Start.
func (t *Timer) StartTime() (time.Time, error) {
	if t.started == nil {
		return time.Time{}, &errors.Error{Op: opStartTime, Err: ErrNotStarted}
	}
	return *t.started, nil
}

// Lap records and returns the time elapsed since Start.
//
// Each lap is measured from the start instant, not from the previous lap.
// If the clock reports a time before the start instant, Lap returns
// ErrInternalClock and records nothing.
func (t *Timer) Lap() (time.Duration, error) {
	if t.started == nil {
		return 0, &errors.Error{Op: opLap, Err: ErrNotStarted}
	}

	d := t.now().Sub(*t.started)
	if d < 0 {
		return 0, &errors.Error{
			Op:  opLap,
			Msg: fmt.Sprintf("elapsed %s", d),
			Err: ErrInternalClock,
		}
	}

	t.laps = append(t.laps, d)
	return d, nil
}

// Laps returns a copy of the recorded laps in the order they were taken.
func (t *Timer) Laps() []time.Duration {
	laps := make([]time.Duration, len(t.laps))
	copy(laps, t.laps)
	return laps
}

// LapsFormatted returns the recorded laps rendered with HumanDuration.
func (t *Timer) LapsFormatted() []string {
	a := make([]string, 0, len(t.laps))
	for _, d := range t.laps {
		a = append(a, HumanDuration(d))
	}
	return a
}

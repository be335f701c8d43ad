package stopwatch

import (
	"github.com/influxdata/yatl/kit/platform/errors"
)

const (
	opStart     = "stopwatch.Start"
	opStartTime = "stopwatch.StartTime"
	opLap       = "stopwatch.Lap"
)

var (
	// ErrAlreadyStarted is returned when starting a timer that already has a start instant.
	ErrAlreadyStarted = &errors.Error{
		Code: errors.EConflict,
		Msg:  "timer already started",
	}

	// ErrNotStarted is returned when reading the start instant or taking a lap
	// before the timer has been started.
	ErrNotStarted = &errors.Error{
		Code: errors.EInvalid,
		Msg:  "timer not started",
	}

	// ErrInternalClock is returned when the clock reports a time earlier than
	// the recorded start instant.
	ErrInternalClock = &errors.Error{
		Code: errors.EInternal,
		Msg:  "clock moved backwards",
	}
)

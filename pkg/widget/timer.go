package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit is the unit a timer duration is entered in.
type Unit string

const (
	UnitMinutes Unit = "m"
	UnitHours   Unit = "h"
)

// DefaultTimerDuration is used for new timers and for unparsable edits.
const DefaultTimerDuration = 25

// ErrRunning rejects edits that are only allowed while a widget is paused.
var ErrRunning = errors.New("widget: not allowed while running")

// SecondsPerUnit converts one unit into seconds. Anything other than hours
// counts as minutes.
func SecondsPerUnit(u Unit) int {
	if u == UnitHours {
		return 3600
	}
	return 60
}

// Timer counts down whole seconds from duration × unit.
type Timer struct {
	Duration  int  `json:"duration"`
	Unit      Unit `json:"unit,omitempty"`
	TimeLeft  int  `json:"timeLeft"`
	IsRunning bool `json:"isRunning"`
}

// NewTimer returns a paused timer loaded with its full duration.
func NewTimer(duration int, unit Unit) Timer {
	t := Timer{Duration: duration, Unit: unit}
	t.TimeLeft = t.Total()
	return t
}

func (Timer) Kind() Kind { return KindTimer }

func (t Timer) Validate() error {
	if t.Duration < 0 {
		return fmt.Errorf("widget: timer duration %d is negative", t.Duration)
	}
	if t.TimeLeft < 0 {
		return fmt.Errorf("widget: timer timeLeft %d is negative", t.TimeLeft)
	}
	switch t.Unit {
	case "", UnitMinutes, UnitHours:
		return nil
	default:
		return fmt.Errorf("widget: timer unit %q", t.Unit)
	}
}

// UnmarshalJSON fills timeLeft from the duration when it was never saved.
func (t *Timer) UnmarshalJSON(b []byte) error {
	var raw struct {
		Duration  int   `json:"duration"`
		Unit      Unit  `json:"unit"`
		TimeLeft  *int  `json:"timeLeft"`
		IsRunning *bool `json:"isRunning"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Duration = raw.Duration
	t.Unit = raw.Unit
	if t.Unit == "" {
		t.Unit = UnitMinutes
	}
	if raw.TimeLeft != nil {
		t.TimeLeft = *raw.TimeLeft
	} else {
		t.TimeLeft = t.Total()
	}
	t.IsRunning = raw.IsRunning != nil && *raw.IsRunning
	return nil
}

// Total is the full countdown length in seconds.
func (t Timer) Total() int {
	return t.Duration * SecondsPerUnit(t.Unit)
}

// Toggle starts or pauses. A timer with nothing left cannot start.
func (t Timer) Toggle() Timer {
	if !t.IsRunning && t.TimeLeft <= 0 {
		t.IsRunning = false
		return t
	}
	t.IsRunning = !t.IsRunning
	return t
}

// Tick advances a running timer by one second and stops it at zero. The
// boolean reports whether anything changed.
func (t Timer) Tick() (Timer, bool) {
	if !t.IsRunning {
		return t, false
	}
	t.TimeLeft--
	if t.TimeLeft <= 0 {
		t.TimeLeft = 0
		t.IsRunning = false
	}
	return t, true
}

// Reset stops the timer and reloads the full duration.
func (t Timer) Reset() Timer {
	t.IsRunning = false
	t.TimeLeft = t.Total()
	return t
}

// AddMinutes extends the remaining time without touching the duration.
func (t Timer) AddMinutes(minutes int) (Timer, error) {
	if t.IsRunning {
		return t, ErrRunning
	}
	if minutes <= 0 {
		return t, fmt.Errorf("widget: cannot add %d minutes", minutes)
	}
	t.TimeLeft += minutes * 60
	return t, nil
}

// EditDuration replaces the duration with an integer parsed from raw. Input
// that is not a positive integer falls back to DefaultTimerDuration.
func (t Timer) EditDuration(raw string) (Timer, error) {
	if t.IsRunning {
		return t, ErrRunning
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || val <= 0 {
		val = DefaultTimerDuration
	}
	t.Duration = val
	t.TimeLeft = t.Total()
	return t, nil
}

// ToggleUnit flips minutes and hours, reloads timeLeft and pauses.
func (t Timer) ToggleUnit() Timer {
	if t.Unit == UnitHours {
		t.Unit = UnitMinutes
	} else {
		t.Unit = UnitHours
	}
	t.TimeLeft = t.Total()
	t.IsRunning = false
	return t
}

// Progress is the elapsed fraction in [0, 1].
func (t Timer) Progress() float64 {
	denom := t.Total()
	if t.TimeLeft > denom {
		denom = t.TimeLeft
	}
	if denom < 1 {
		denom = 1
	}
	return 1 - float64(t.TimeLeft)/float64(denom)
}

// Format renders timeLeft as H:MM:SS or M:SS.
func (t Timer) Format() string {
	return FormatSeconds(t.TimeLeft)
}

// FormatSeconds renders whole seconds as H:MM:SS when at least an hour
// remains, otherwise M:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

package widget

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotRunning rejects laps on a stopped stopwatch.
var ErrNotRunning = errors.New("widget: not running")

// Stopwatch measures elapsed milliseconds from wall-clock deltas. While
// running, StartedAt anchors the run so elapsed survives restarts and
// irregular tick intervals.
type Stopwatch struct {
	Elapsed   int64   `json:"elapsed"`
	IsRunning bool    `json:"isRunning"`
	Laps      []int64 `json:"laps"`
	StartedAt int64   `json:"startedAt,omitempty"`
}

func (Stopwatch) Kind() Kind { return KindStopwatch }

func (s Stopwatch) Validate() error {
	if s.Elapsed < 0 {
		return fmt.Errorf("widget: stopwatch elapsed %d is negative", s.Elapsed)
	}
	for _, l := range s.Laps {
		if l < 0 {
			return fmt.Errorf("widget: stopwatch lap %d is negative", l)
		}
	}
	return nil
}

func (s Stopwatch) normalize() Stopwatch {
	if s.Laps == nil {
		s.Laps = []int64{}
	}
	if s.IsRunning && s.StartedAt == 0 {
		// Saved without an anchor: resume from the frozen value.
		s.IsRunning = false
	}
	return s
}

// Current returns elapsed milliseconds as of now.
func (s Stopwatch) Current(now time.Time) int64 {
	if !s.IsRunning {
		return s.Elapsed
	}
	ms := now.UnixMilli() - s.StartedAt
	if ms < 0 {
		return 0
	}
	return ms
}

// Start resumes counting from the current elapsed value.
func (s Stopwatch) Start(now time.Time) Stopwatch {
	if s.IsRunning {
		return s
	}
	s.IsRunning = true
	s.StartedAt = now.UnixMilli() - s.Elapsed
	return s
}

// Stop freezes elapsed at now.
func (s Stopwatch) Stop(now time.Time) Stopwatch {
	if !s.IsRunning {
		return s
	}
	s.Elapsed = s.Current(now)
	s.IsRunning = false
	s.StartedAt = 0
	return s
}

// Toggle starts a stopped stopwatch or stops a running one.
func (s Stopwatch) Toggle(now time.Time) Stopwatch {
	if s.IsRunning {
		return s.Stop(now)
	}
	return s.Start(now)
}

// Lap prepends the current elapsed value. Only valid while running; the
// clock keeps going.
func (s Stopwatch) Lap(now time.Time) (Stopwatch, error) {
	if !s.IsRunning {
		return s, ErrNotRunning
	}
	laps := make([]int64, 0, len(s.Laps)+1)
	laps = append(laps, s.Current(now))
	s.Laps = append(laps, s.Laps...)
	return s, nil
}

// Reset clears elapsed and laps. Only valid while stopped.
func (s Stopwatch) Reset() (Stopwatch, error) {
	if s.IsRunning {
		return s, ErrRunning
	}
	return Stopwatch{Laps: []int64{}}, nil
}

// FormatMillis renders milliseconds as M:SS.CC with unbounded minutes.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis)
}

package widget

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CountdownInterval is how often a configured countdown is recomputed.
const CountdownInterval = time.Minute

// ErrNoTarget is returned when a countdown has no target date yet.
var ErrNoTarget = errors.New("widget: countdown has no target date")

var targetLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Countdown counts whole days and hours to a target date.
type Countdown struct {
	TargetDate string `json:"targetDate"`
	EventName  string `json:"eventName"`
}

func (Countdown) Kind() Kind { return KindCountdown }

func (c Countdown) Validate() error { return nil }

// Configured is false while the widget is still in setup mode.
func (c Countdown) Configured() bool {
	return strings.TrimSpace(c.TargetDate) != ""
}

// Set configures the event. The date must parse.
func (c Countdown) Set(name, date string, loc *time.Location) (Countdown, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := ParseTarget(date, loc); err != nil {
			return c, err
		}
	}
	c.EventName = strings.TrimSpace(name)
	c.TargetDate = date
	return c, nil
}

// ParseTarget accepts a calendar date (midnight in loc), a local date-time,
// or an RFC 3339 timestamp.
func ParseTarget(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("widget: countdown target %q is not a date", raw)
}

// Remaining is the time left to a countdown target.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Done    bool
}

// Remaining computes whole days, hours and minutes from now to the target.
// A target at or before now is Done.
func (c Countdown) Remaining(now time.Time) (Remaining, error) {
	if !c.Configured() {
		return Remaining{}, ErrNoTarget
	}
	target, err := ParseTarget(c.TargetDate, now.Location())
	if err != nil {
		return Remaining{}, err
	}
	return RemainingUntil(now, target), nil
}

// RemainingUntil splits target-now into whole units.
func RemainingUntil(now, target time.Time) Remaining {
	diff := target.Sub(now)
	if diff <= 0 {
		return Remaining{Done: true}
	}
	const day = 24 * time.Hour
	days := diff / day
	diff -= days * day
	hours := diff / time.Hour
	diff -= hours * time.Hour
	return Remaining{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(diff / time.Minute),
	}
}

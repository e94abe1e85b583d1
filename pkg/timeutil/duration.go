// Package timeutil parses the human duration strings accepted by the timer
// commands.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)
	unitMap        = map[string]time.Duration{
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,
		"":        time.Minute,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
		"d":       24 * time.Hour,
		"day":     24 * time.Hour,
		"days":    24 * time.Hour,
	}
)

// ErrEmpty is returned by Parse for blank input.
var ErrEmpty = errors.New("timeutil: empty duration")

// Parse reads a duration such as "25", "90m", "2h" or "1h30m". A bare
// number counts as minutes. It returns the duration and its compact form.
func Parse(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", ErrEmpty
	}

	var total time.Duration
	for len(remaining) > 0 {
		m := segmentPattern.FindStringSubmatch(remaining)
		if len(m) != 3 || m[0] == "" {
			return 0, "", fmt.Errorf("timeutil: invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid duration value %q: %w", m[1], err)
		}
		base, ok := unitMap[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported duration unit %q", m[2])
		}
		total += time.Duration(value) * base
		remaining = strings.TrimSpace(remaining[len(m[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: duration must be greater than zero")
	}
	return total, Format(total), nil
}

// Format renders a duration using day/hour/minute/second tokens.
func Format(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	units := []struct {
		label string
		value time.Duration
	}{
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}

// TimerValue expresses d in the units a timer understands: whole hours when
// d is an exact number of hours, otherwise minutes rounded up.
func TimerValue(d time.Duration) (value int, hours bool) {
	if d >= time.Hour && d%time.Hour == 0 {
		return int(d / time.Hour), true
	}
	minutes := d / time.Minute
	if d%time.Minute != 0 {
		minutes++
	}
	return int(minutes), false
}

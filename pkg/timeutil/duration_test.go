package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Duration
		label string
	}{
		{"25", 25 * time.Minute, "25m"},
		{"90m", 90 * time.Minute, "1h30m"},
		{"2h", 2 * time.Hour, "2h"},
		{"1h 30m", 90 * time.Minute, "1h30m"},
		{"1d2h", 26 * time.Hour, "1d2h"},
		{"45s", 45 * time.Second, "45s"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, label, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if label != tt.label {
				t.Fatalf("expected label %s, got %s", tt.label, label)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, _, err := Parse("  "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	for _, in := range []string{"abc", "5y", "0m"} {
		if _, _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTimerValue(t *testing.T) {
	tests := []struct {
		in    time.Duration
		value int
		hours bool
	}{
		{2 * time.Hour, 2, true},
		{90 * time.Minute, 90, false},
		{25 * time.Minute, 25, false},
		{45 * time.Second, 1, false},
		{24 * time.Hour, 24, true},
	}
	for _, tt := range tests {
		value, hours := TimerValue(tt.in)
		if value != tt.value || hours != tt.hours {
			t.Fatalf("TimerValue(%v) = %d,%t want %d,%t", tt.in, value, hours, tt.value, tt.hours)
		}
	}
}

func TestFormatZero(t *testing.T) {
	if got := Format(0); got != "0s" {
		t.Fatalf("expected 0s, got %s", got)
	}
}

package widget

import (
	"testing"
	"time"
)

func TestCountdownRemaining(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		target string
		want   Remaining
	}{
		{"exactly now", now.Format(time.RFC3339), Remaining{Done: true}},
		{"past", "2025-06-01", Remaining{Done: true}},
		{"one day", now.Add(24 * time.Hour).Format(time.RFC3339), Remaining{Days: 1}},
		{"day hour minute", now.Add(26*time.Hour + 30*time.Minute).Format(time.RFC3339), Remaining{Days: 1, Hours: 2, Minutes: 30}},
		{"calendar date", "2025-06-12", Remaining{Days: 1, Hours: 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Countdown{TargetDate: tc.target}.Remaining(now)
			if err != nil {
				t.Fatalf("remaining: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCountdownSetupMode(t *testing.T) {
	c := Countdown{}
	if c.Configured() {
		t.Fatalf("empty countdown should be in setup mode")
	}
	if _, err := c.Remaining(time.Now()); err != ErrNoTarget {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	c, err := c.Set("Launch", "2030-01-01", time.UTC)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if !c.Configured() || c.EventName != "Launch" {
		t.Fatalf("got %+v", c)
	}
	if _, err := c.Set("Launch", "someday", time.UTC); err == nil {
		t.Fatalf("expected error for unparsable date")
	}
}

func TestCountdownLocalDateTime(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	now := time.Date(2025, time.June, 10, 8, 0, 0, 0, loc)
	got, err := Countdown{TargetDate: "2025-06-10T11:15"}.Remaining(now)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if got != (Remaining{Hours: 3, Minutes: 15}) {
		t.Fatalf("got %+v", got)
	}
}

package widget

import (
	"testing"
	"time"
)

func TestClockCycleZoneWraps(t *testing.T) {
	c := Clock{}
	var seen []string
	for i := 0; i < len(Zones); i++ {
		c = c.CycleZone()
		seen = append(seen, c.ZoneLabel())
	}
	want := []string{"UTC", "London", "New York", "Los Angeles", "Tokyo", "Sydney", "Local"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d = %q, want %q (all: %v)", i, seen[i], want[i], seen)
		}
	}
	if c.Timezone != "" {
		t.Fatalf("cycle should end on local, got %q", c.Timezone)
	}
}

func TestClockFaceUsesTargetZone(t *testing.T) {
	now := time.Date(2025, time.January, 15, 23, 30, 45, 0, time.UTC)
	c := Clock{Timezone: "Asia/Tokyo", Is24Hour: true, ShowDate: true, ShowSeconds: true}
	face := c.Face(now)
	if face.Time != "08:30" {
		t.Fatalf("time = %q, want 08:30", face.Time)
	}
	if face.Seconds != "45" {
		t.Fatalf("seconds = %q", face.Seconds)
	}
	if face.Date != "Thu, Jan 16" {
		t.Fatalf("date = %q", face.Date)
	}
	if face.Zone != "Tokyo" {
		t.Fatalf("zone = %q", face.Zone)
	}
}

func TestClockFaceTwelveHour(t *testing.T) {
	now := time.Date(2025, time.January, 15, 13, 5, 9, 0, time.UTC)
	face := Clock{Timezone: "UTC"}.Face(now)
	if face.Time != "01:05 PM" {
		t.Fatalf("time = %q", face.Time)
	}
	if face.Date != "" {
		t.Fatalf("date should be hidden, got %q", face.Date)
	}
}

func TestClockUnknownZoneFallsBackToLocal(t *testing.T) {
	c := Clock{Timezone: "Mars/Olympus"}
	if c.Location() != time.Local {
		t.Fatalf("expected local fallback")
	}
	if c.Validate() == nil {
		t.Fatalf("expected validation error for unknown zone")
	}
}

package widget

import (
	"testing"
	"time"
)

func TestStopwatchUsesWallClockDeltas(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	sw := Stopwatch{}.Start(start)
	if got := sw.Current(start.Add(1500 * time.Millisecond)); got != 1500 {
		t.Fatalf("current = %d, want 1500", got)
	}
	sw = sw.Stop(start.Add(2 * time.Second))
	if sw.Elapsed != 2000 || sw.IsRunning {
		t.Fatalf("after stop got %+v", sw)
	}

	// Resuming after an arbitrary pause continues from the frozen value.
	resume := start.Add(time.Hour)
	sw = sw.Start(resume)
	if got := sw.Current(resume.Add(250 * time.Millisecond)); got != 2250 {
		t.Fatalf("current after resume = %d, want 2250", got)
	}
}

func TestStopwatchLapDoesNotMutateElapsed(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	sw := Stopwatch{Laps: []int64{}}.Start(start)
	before := sw

	sw, err := sw.Lap(start.Add(time.Second))
	if err != nil {
		t.Fatalf("lap: %v", err)
	}
	sw, err = sw.Lap(start.Add(3 * time.Second))
	if err != nil {
		t.Fatalf("lap: %v", err)
	}
	if sw.Elapsed != before.Elapsed || sw.StartedAt != before.StartedAt || !sw.IsRunning {
		t.Fatalf("lap changed the running clock: %+v", sw)
	}
	if len(sw.Laps) != 2 || sw.Laps[0] != 3000 || sw.Laps[1] != 1000 {
		t.Fatalf("laps should be newest first, got %v", sw.Laps)
	}
	if len(before.Laps) != 0 {
		t.Fatalf("lap mutated the previous value's laps")
	}
}

func TestStopwatchLapRequiresRunning(t *testing.T) {
	if _, err := (Stopwatch{}).Lap(time.Now()); err != ErrNotRunning {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestStopwatchResetOnlyWhenStopped(t *testing.T) {
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	running := Stopwatch{}.Start(now)
	if _, err := running.Reset(); err != ErrRunning {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
	stopped := Stopwatch{Elapsed: 5000, Laps: []int64{4000, 1000}}
	got, err := stopped.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got.Elapsed != 0 || len(got.Laps) != 0 || got.Laps == nil {
		t.Fatalf("reset gave %+v", got)
	}
}

func TestFormatMillis(t *testing.T) {
	cases := map[int64]string{
		0:       "0:00.00",
		1234:    "0:01.23",
		61005:   "1:01.00",
		3600000: "60:00.00",
		-5:      "0:00.00",
	}
	for in, want := range cases {
		if got := FormatMillis(in); got != want {
			t.Fatalf("FormatMillis(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestStopwatchShowsCentisecondsBetweenRedraws(t *testing.T) {
	start := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	sw := Stopwatch{}.Start(start)
	redraw := TickInterval(sw)
	if redraw <= 0 {
		t.Fatalf("running stopwatch needs a redraw tick")
	}
	// A frame drawn at an arbitrary instant, not on a tick boundary, shows
	// the exact centisecond.
	now := start.Add(redraw*3 + 17*time.Millisecond)
	if got := FormatMillis(sw.Current(now)); got != "0:00.16" {
		t.Fatalf("shown = %s, want 0:00.16", got)
	}
}

package widget

import (
	"encoding/json"
	"testing"
)

func TestNewTimerStartsAtFullDuration(t *testing.T) {
	cases := []struct {
		duration int
		unit     Unit
		want     int
	}{
		{25, UnitMinutes, 1500},
		{1, UnitHours, 3600},
		{3, UnitHours, 10800},
	}
	for _, tc := range cases {
		got := NewTimer(tc.duration, tc.unit)
		if got.TimeLeft != tc.want {
			t.Fatalf("NewTimer(%d, %s).TimeLeft = %d, want %d", tc.duration, tc.unit, got.TimeLeft, tc.want)
		}
		if got.IsRunning {
			t.Fatalf("new timer should be paused")
		}
	}
}

func TestTimerTicksClampAtZeroAndStop(t *testing.T) {
	timer := NewTimer(1, UnitMinutes).Toggle()
	if !timer.IsRunning {
		t.Fatalf("expected timer to start")
	}
	for i := 0; i < 59; i++ {
		timer, _ = timer.Tick()
	}
	if timer.TimeLeft != 1 || !timer.IsRunning {
		t.Fatalf("after 59 ticks got timeLeft=%d running=%v", timer.TimeLeft, timer.IsRunning)
	}
	timer, changed := timer.Tick()
	if !changed {
		t.Fatalf("final tick should report a change")
	}
	if timer.TimeLeft != 0 || timer.IsRunning {
		t.Fatalf("expected stopped at zero, got timeLeft=%d running=%v", timer.TimeLeft, timer.IsRunning)
	}
	timer, changed = timer.Tick()
	if changed || timer.TimeLeft != 0 {
		t.Fatalf("ticks after completion must be no-ops")
	}
}

func TestTimerCannotStartAtZero(t *testing.T) {
	timer := Timer{Duration: 0, Unit: UnitMinutes}
	if timer.Toggle().IsRunning {
		t.Fatalf("timer with nothing left should not start")
	}
}

func TestTimerPausedTickIsNoop(t *testing.T) {
	timer := NewTimer(5, UnitMinutes)
	next, changed := timer.Tick()
	if changed || next.TimeLeft != timer.TimeLeft {
		t.Fatalf("paused timer must not tick")
	}
}

func TestTimerAddMinutesOnlyWhilePaused(t *testing.T) {
	timer := NewTimer(25, UnitMinutes)
	next, err := timer.AddMinutes(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.TimeLeft != 1500+300 {
		t.Fatalf("timeLeft = %d", next.TimeLeft)
	}
	if next.Duration != 25 {
		t.Fatalf("duration must not change, got %d", next.Duration)
	}
	if _, err := next.Toggle().AddMinutes(1); err != ErrRunning {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
}

func TestTimerEditDuration(t *testing.T) {
	timer := NewTimer(25, UnitMinutes)
	next, err := timer.EditDuration("10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Duration != 10 || next.TimeLeft != 600 {
		t.Fatalf("got duration=%d timeLeft=%d", next.Duration, next.TimeLeft)
	}
	next, _ = timer.EditDuration("abc")
	if next.Duration != DefaultTimerDuration {
		t.Fatalf("parse failure should default to %d, got %d", DefaultTimerDuration, next.Duration)
	}
	if _, err := timer.Toggle().EditDuration("5"); err != ErrRunning {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
}

func TestTimerEditDurationNonPositiveDefaults(t *testing.T) {
	timer := NewTimer(10, UnitMinutes)
	for _, raw := range []string{"-5", "0", "", " -1 "} {
		next, err := timer.EditDuration(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if next.Duration != DefaultTimerDuration || next.TimeLeft != DefaultTimerDuration*60 {
			t.Errorf("%q gave duration=%d timeLeft=%d", raw, next.Duration, next.TimeLeft)
		}
	}
}

func TestTimerToggleUnitRecomputesAndPauses(t *testing.T) {
	timer := NewTimer(2, UnitMinutes).Toggle()
	timer = timer.ToggleUnit()
	if timer.Unit != UnitHours || timer.TimeLeft != 7200 || timer.IsRunning {
		t.Fatalf("got unit=%s timeLeft=%d running=%v", timer.Unit, timer.TimeLeft, timer.IsRunning)
	}
	timer = timer.ToggleUnit()
	if timer.Unit != UnitMinutes || timer.TimeLeft != 120 {
		t.Fatalf("got unit=%s timeLeft=%d", timer.Unit, timer.TimeLeft)
	}
}

func TestTimerProgress(t *testing.T) {
	timer := NewTimer(1, UnitMinutes)
	if p := timer.Progress(); p != 0 {
		t.Fatalf("fresh progress = %v", p)
	}
	timer.TimeLeft = 15
	if p := timer.Progress(); p != 0.75 {
		t.Fatalf("progress = %v, want 0.75", p)
	}
	extended, _ := NewTimer(1, UnitMinutes).AddMinutes(1)
	if p := extended.Progress(); p != 0 {
		t.Fatalf("extended timer progress = %v, want 0", p)
	}
	zero := Timer{}
	if p := zero.Progress(); p != 1 {
		t.Fatalf("zero timer progress = %v, want 1", p)
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		59:   "0:59",
		1500: "25:00",
		3600: "1:00:00",
		3725: "1:02:05",
	}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTimerDecodeFillsTimeLeft(t *testing.T) {
	c, err := Decode(KindTimer, json.RawMessage(`{"duration":25}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	timer := c.(Timer)
	if timer.TimeLeft != 1500 || timer.Unit != UnitMinutes {
		t.Fatalf("got %+v", timer)
	}

	c, err = Decode(KindTimer, json.RawMessage(`{"duration":25,"unit":"h","timeLeft":0,"isRunning":false}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.(Timer).TimeLeft != 0 {
		t.Fatalf("explicit zero timeLeft must be kept")
	}
}

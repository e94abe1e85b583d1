package widget

import (
	"errors"
	"testing"
	"time"
)

func testEnv() Env {
	n := 0
	return Env{
		Now: time.Date(2025, time.May, 5, 10, 0, 0, 0, time.UTC),
		NewID: func() string {
			n++
			return string(rune('a' + n - 1))
		},
	}
}

func TestApplyTodoFlow(t *testing.T) {
	env := testEnv()
	var c Content = Todo{Items: []TodoItem{}}

	c, eff, err := Apply(c, NewAction("add", "buy", "milk"), env)
	if err != nil || !eff.Persist {
		t.Fatalf("add: %v %+v", err, eff)
	}
	todo := c.(Todo)
	if len(todo.Items) != 1 || todo.Items[0].Text != "buy milk" || todo.Items[0].ID != "a" {
		t.Fatalf("items = %+v", todo.Items)
	}

	c, _, err = Apply(c, NewAction("TOGGLE", "a"), env)
	if err != nil || !c.(Todo).Items[0].Completed {
		t.Fatalf("toggle: %v %+v", err, c)
	}

	_, eff, err = Apply(c, NewAction("toggle", "missing"), env)
	if !errors.Is(err, ErrItemNotFound) || eff.Persist {
		t.Fatalf("missing toggle: %v %+v", err, eff)
	}
}

func TestApplyUnknownAction(t *testing.T) {
	c := Counter{Count: 3}
	got, eff, err := Apply(c, NewAction("explode"), testEnv())
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if eff.Persist || got.(Counter).Count != 3 {
		t.Fatalf("unknown action changed state: %+v %+v", got, eff)
	}
}

func TestApplyTimerTickPersistsOnlyWhenRunning(t *testing.T) {
	env := testEnv()
	paused := NewTimer(1, UnitMinutes)
	_, eff, err := Apply(paused, NewAction("tick"), env)
	if err != nil || eff.Persist {
		t.Fatalf("paused tick: %v %+v", err, eff)
	}

	running, _, _ := Apply(paused, NewAction("start"), env)
	next, eff, err := Apply(running, NewAction("tick"), env)
	if err != nil || !eff.Persist {
		t.Fatalf("running tick: %v %+v", err, eff)
	}
	if next.(Timer).TimeLeft != 59 {
		t.Fatalf("timeLeft = %d", next.(Timer).TimeLeft)
	}

	if _, _, err := Apply(running, NewAction("add", "5"), env); !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
}

func TestApplyStopwatchUsesEnvClock(t *testing.T) {
	env := testEnv()
	c, _, _ := Apply(Stopwatch{Laps: []int64{}}, NewAction("start"), env)
	env.Now = env.Now.Add(700 * time.Millisecond)
	c, _, err := Apply(c, NewAction("lap"), env)
	if err != nil {
		t.Fatalf("lap: %v", err)
	}
	if laps := c.(Stopwatch).Laps; len(laps) != 1 || laps[0] != 700 {
		t.Fatalf("laps = %v", laps)
	}
}

func TestApplyCountdownSet(t *testing.T) {
	c, eff, err := Apply(Countdown{}, NewAction("set", "2030-12-25", "Holiday", "trip"), testEnv())
	if err != nil || !eff.Persist {
		t.Fatalf("set: %v %+v", err, eff)
	}
	cd := c.(Countdown)
	if cd.TargetDate != "2030-12-25" || cd.EventName != "Holiday trip" {
		t.Fatalf("got %+v", cd)
	}
}

func TestApplyHabitToggle(t *testing.T) {
	env := testEnv()
	c, _, _ := Apply(Habit{Habits: []HabitItem{}}, NewAction("add", "Stretch"), env)
	c, _, err := Apply(c, NewAction("toggle", "a", "3"), env)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !c.(Habit).Habits[0].History[3] {
		t.Fatalf("history = %v", c.(Habit).Habits[0].History)
	}
	if _, _, err := Apply(c, NewAction("toggle", "a", "thu"), env); err == nil {
		t.Fatalf("expected error for non-numeric day")
	}
}

func TestTickInterval(t *testing.T) {
	cases := []struct {
		name string
		c    Content
		want time.Duration
	}{
		{"paused timer", NewTimer(5, UnitMinutes), 0},
		{"running timer", Timer{Duration: 5, TimeLeft: 10, IsRunning: true}, time.Second},
		{"stopped stopwatch", Stopwatch{}, 0},
		{"running stopwatch", Stopwatch{IsRunning: true}, 50 * time.Millisecond},
		{"clock", Clock{}, time.Second},
		{"countdown setup", Countdown{}, 0},
		{"countdown", Countdown{TargetDate: "2030-01-01"}, time.Minute},
		{"note", Note{}, 0},
	}
	for _, tc := range cases {
		if got := TickInterval(tc.c); got != tc.want {
			t.Fatalf("%s: interval = %v, want %v", tc.name, got, tc.want)
		}
	}
}

package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownAction is returned when a kind has no handler for an action.
var ErrUnknownAction = errors.New("widget: unknown action")

// Action is a named event for a widget, with positional arguments.
type Action struct {
	Name string
	Args []string
}

// NewAction builds an action from a name and arguments.
func NewAction(name string, args ...string) Action {
	return Action{Name: strings.ToLower(strings.TrimSpace(name)), Args: args}
}

func (a Action) arg(i int) string {
	if i < len(a.Args) {
		return a.Args[i]
	}
	return ""
}

func (a Action) rest(i int) string {
	if i >= len(a.Args) {
		return ""
	}
	return strings.Join(a.Args[i:], " ")
}

// Env carries the inputs a transition may need besides the content.
type Env struct {
	Now   time.Time
	NewID func() string
}

func (e Env) id() string {
	if e.NewID == nil {
		return strconv.FormatInt(e.Now.UnixNano(), 36)
	}
	return e.NewID()
}

// Effect describes what the caller must do after a transition.
type Effect struct {
	// Persist is set when the new content must be written.
	Persist bool
}

// Actions lists the action names each kind understands, for help output.
func Actions(k Kind) []string {
	switch k {
	case KindTodo:
		return []string{"add <text>", "toggle <id>", "remove <id>", "hide-completed"}
	case KindNote:
		return []string{"set <text>", "font-size", "font-family"}
	case KindTimer:
		return []string{"toggle", "start", "pause", "tick", "reset", "add <minutes>", "duration <value>", "unit"}
	case KindCounter:
		return []string{"inc", "dec", "reset"}
	case KindImage:
		return []string{"set <url>"}
	case KindLinks:
		return []string{"add <label> <url>", "remove <id>"}
	case KindHabit:
		return []string{"add <text>", "remove <id>", "toggle <id> <day 0-6>"}
	case KindClock:
		return []string{"zone", "seconds", "date", "24h"}
	case KindStopwatch:
		return []string{"toggle", "start", "stop", "lap", "reset"}
	case KindQuote:
		return []string{"text <text>", "author <name>"}
	case KindCalculator:
		return []string{"press <keys>", "clear"}
	case KindCountdown:
		return []string{"set <date> [name]", "name <text>", "date <date>"}
	default:
		return nil
	}
}

// Apply runs one action against content and returns the next content.
// Content is never mutated in place.
func Apply(c Content, a Action, env Env) (Content, Effect, error) {
	persist := Effect{Persist: true}
	switch v := c.(type) {
	case Timer:
		switch a.Name {
		case "toggle":
			return v.Toggle(), persist, nil
		case "start":
			if v.IsRunning {
				return v, Effect{}, nil
			}
			return v.Toggle(), persist, nil
		case "pause", "stop":
			v.IsRunning = false
			return v, persist, nil
		case "tick":
			next, changed := v.Tick()
			return next, Effect{Persist: changed}, nil
		case "reset":
			return v.Reset(), persist, nil
		case "add":
			n, err := strconv.Atoi(a.arg(0))
			if err != nil {
				return v, Effect{}, fmt.Errorf("widget: timer add %q: %w", a.arg(0), err)
			}
			next, err := v.AddMinutes(n)
			return next, persistOn(err), err
		case "duration", "edit":
			next, err := v.EditDuration(a.arg(0))
			return next, persistOn(err), err
		case "unit":
			return v.ToggleUnit(), persist, nil
		}
	case Stopwatch:
		switch a.Name {
		case "toggle":
			return v.Toggle(env.Now), persist, nil
		case "start":
			return v.Start(env.Now), persist, nil
		case "stop":
			return v.Stop(env.Now), persist, nil
		case "lap":
			next, err := v.Lap(env.Now)
			return next, persistOn(err), err
		case "reset":
			next, err := v.Reset()
			return next, persistOn(err), err
		}
	case Calculator:
		switch a.Name {
		case "press", "keys":
			next, err := v.Press(a.rest(0))
			return next, persistOn(err), err
		case "clear":
			return v.Clear(), persist, nil
		case "negate":
			return v.Negate(), persist, nil
		}
	case Countdown:
		switch a.Name {
		case "set":
			next, err := v.Set(a.rest(1), a.arg(0), env.Now.Location())
			return next, persistOn(err), err
		case "name":
			v.EventName = strings.TrimSpace(a.rest(0))
			return v, persist, nil
		case "date":
			next, err := v.Set(v.EventName, a.arg(0), env.Now.Location())
			return next, persistOn(err), err
		}
	case Clock:
		switch a.Name {
		case "zone", "cycle":
			return v.CycleZone(), persist, nil
		case "seconds":
			v.ShowSeconds = !v.ShowSeconds
			return v, persist, nil
		case "date":
			v.ShowDate = !v.ShowDate
			return v, persist, nil
		case "24h", "format":
			v.Is24Hour = !v.Is24Hour
			return v, persist, nil
		}
	case Todo:
		switch a.Name {
		case "add":
			next, err := v.Add(env.id(), a.rest(0))
			return next, persistOn(err), err
		case "toggle":
			next, err := v.Toggle(a.arg(0))
			return next, persistOn(err), err
		case "remove", "rm":
			next, err := v.Remove(a.arg(0))
			return next, persistOn(err), err
		case "hide-completed", "hide":
			return v.ToggleHideCompleted(), persist, nil
		}
	case Note:
		switch a.Name {
		case "set", "text":
			v.Text = a.rest(0)
			return v, persist, nil
		case "font-size", "size":
			return v.ToggleFontSize(), persist, nil
		case "font-family", "font":
			return v.ToggleFontFamily(), persist, nil
		}
	case Counter:
		switch a.Name {
		case "inc", "+":
			return v.Increment(), persist, nil
		case "dec", "-":
			return v.Decrement(), persist, nil
		case "reset":
			return v.Reset(), persist, nil
		}
	case Image:
		switch a.Name {
		case "set", "url":
			v.URL = strings.TrimSpace(a.arg(0))
			return v, persist, nil
		}
	case Links:
		switch a.Name {
		case "add":
			next, err := v.Add(env.id(), a.arg(0), a.arg(1))
			return next, persistOn(err), err
		case "remove", "rm":
			next, err := v.Remove(a.arg(0))
			return next, persistOn(err), err
		}
	case Habit:
		switch a.Name {
		case "add":
			next, err := v.Add(env.id(), a.rest(0))
			return next, persistOn(err), err
		case "remove", "rm":
			next, err := v.Remove(a.arg(0))
			return next, persistOn(err), err
		case "toggle":
			day, err := strconv.Atoi(a.arg(1))
			if err != nil {
				return v, Effect{}, fmt.Errorf("widget: habit day %q: %w", a.arg(1), err)
			}
			next, err := v.ToggleDay(a.arg(0), day)
			return next, persistOn(err), err
		}
	case Quote:
		switch a.Name {
		case "text":
			v.Text = a.rest(0)
			return v, persist, nil
		case "author":
			v.Author = a.rest(0)
			return v, persist, nil
		}
	}
	if c == nil {
		return nil, Effect{}, fmt.Errorf("%w: no content", ErrUnknownAction)
	}
	return c, Effect{}, fmt.Errorf("%w %q for %s", ErrUnknownAction, a.Name, c.Kind())
}

func persistOn(err error) Effect {
	return Effect{Persist: err == nil}
}

// TickInterval is how often a mounted widget needs a periodic task, or zero
// when it needs none in its current state.
func TickInterval(c Content) time.Duration {
	switch v := c.(type) {
	case Timer:
		if v.IsRunning {
			return time.Second
		}
	case Stopwatch:
		// Display only; elapsed time is read from the wall-clock anchor,
		// so the centiseconds shown stay exact at any redraw rate.
		if v.IsRunning {
			return 50 * time.Millisecond
		}
	case Clock:
		return time.Second
	case Countdown:
		if v.Configured() {
			return CountdownInterval
		}
	}
	return 0
}

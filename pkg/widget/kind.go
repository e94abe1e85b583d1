// Package widget defines the content model and state machines for every
// widget kind a tile can host.
//
// Content is a closed union: each Kind has exactly one concrete content type
// and Decode refuses shapes that do not belong to the declared kind. State
// machines never read the wall clock; callers pass "now" in.
package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the widget hosted by a tile. Values match the persisted
// "type" tag.
type Kind string

const (
	KindTodo       Kind = "TODO"
	KindNote       Kind = "NOTE"
	KindTimer      Kind = "TIMER"
	KindCounter    Kind = "COUNTER"
	KindImage      Kind = "IMAGE"
	KindLinks      Kind = "LINKS"
	KindHabit      Kind = "HABIT"
	KindClock      Kind = "CLOCK"
	KindStopwatch  Kind = "STOPWATCH"
	KindQuote      Kind = "QUOTE"
	KindSpacer     Kind = "SPACER"
	KindCalculator Kind = "CALCULATOR"
	KindCountdown  Kind = "COUNTDOWN"
)

// ErrUnknownKind is returned for type tags outside the closed set.
var ErrUnknownKind = errors.New("widget: unknown kind")

// AllKinds returns every kind in add-menu order.
func AllKinds() []Kind {
	return []Kind{
		KindTodo,
		KindNote,
		KindTimer,
		KindHabit,
		KindClock,
		KindCalculator,
		KindCountdown,
		KindStopwatch,
		KindLinks,
		KindCounter,
		KindQuote,
		KindImage,
		KindSpacer,
	}
}

// ParseKind accepts the persisted tag or a lower-case alias ("todo", "calc").
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(raw)))
	switch k {
	case "CALC":
		return KindCalculator, nil
	case "HABITS":
		return KindHabit, nil
	case "LINK":
		return KindLinks, nil
	}
	for _, candidate := range AllKinds() {
		if candidate == k {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, raw)
}

// Label is the human name shown in menus.
func (k Kind) Label() string {
	switch k {
	case KindTodo:
		return "To-Do"
	case KindNote:
		return "Note"
	case KindTimer:
		return "Timer"
	case KindCounter:
		return "Counter"
	case KindImage:
		return "Image"
	case KindLinks:
		return "Links"
	case KindHabit:
		return "Habit"
	case KindClock:
		return "Clock"
	case KindStopwatch:
		return "Stopwatch"
	case KindQuote:
		return "Quote"
	case KindSpacer:
		return "Spacer"
	case KindCalculator:
		return "Calculator"
	case KindCountdown:
		return "Countdown"
	default:
		return string(k)
	}
}

// Content is the persisted state of one widget instance.
type Content interface {
	Kind() Kind
	Validate() error
}

// Default returns the content a freshly added tile of kind k starts with.
func Default(k Kind) (Content, error) {
	switch k {
	case KindTodo:
		return Todo{Items: []TodoItem{}}, nil
	case KindNote:
		return Note{FontSize: FontSizeNormal, FontFamily: FontFamilySans}, nil
	case KindTimer:
		return NewTimer(DefaultTimerDuration, UnitMinutes), nil
	case KindCounter:
		return Counter{}, nil
	case KindImage:
		return Image{}, nil
	case KindLinks:
		return Links{Items: []LinkItem{}}, nil
	case KindHabit:
		return Habit{Habits: []HabitItem{}}, nil
	case KindClock:
		return Clock{ShowSeconds: true, ShowDate: true}, nil
	case KindStopwatch:
		return Stopwatch{Laps: []int64{}}, nil
	case KindQuote:
		return Quote{
			Text:   `"Simplicity is the ultimate sophistication."`,
			Author: "Leonardo da Vinci",
		}, nil
	case KindSpacer:
		return Spacer{}, nil
	case KindCalculator:
		return NewCalculator(), nil
	case KindCountdown:
		return Countdown{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, k)
	}
}

// Decode parses raw content for the declared kind. Missing or null content
// yields the kind's default. Repairable drift (nil lists, short habit
// histories) is normalised before validation.
func Decode(k Kind, raw json.RawMessage) (Content, error) {
	base, err := Default(k)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return base, nil
	}

	var c Content
	switch k {
	case KindTodo:
		v := Todo{}
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindNote:
		v := base.(Note)
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindTimer:
		v := Timer{}
		err = json.Unmarshal(raw, &v)
		c = v
	case KindCounter:
		v := Counter{}
		err = json.Unmarshal(raw, &v)
		c = v
	case KindImage:
		v := Image{}
		err = json.Unmarshal(raw, &v)
		c = v
	case KindLinks:
		v := Links{}
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindHabit:
		v := Habit{}
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindClock:
		v := base.(Clock)
		err = json.Unmarshal(raw, &v)
		c = v
	case KindStopwatch:
		v := Stopwatch{}
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindQuote:
		v := Quote{}
		err = json.Unmarshal(raw, &v)
		c = v
	case KindSpacer:
		v := Spacer{}
		err = json.Unmarshal(raw, &v)
		c = v
	case KindCalculator:
		v := base.(Calculator)
		err = json.Unmarshal(raw, &v)
		c = v.normalize()
	case KindCountdown:
		v := Countdown{}
		err = json.Unmarshal(raw, &v)
		c = v
	}
	if err != nil {
		return nil, fmt.Errorf("widget: decode %s content: %w", k, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

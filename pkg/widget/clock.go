package widget

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Zone is a named entry in the clock's timezone cycle. An empty Name is the
// device-local zone.
type Zone struct {
	Label string
	Name  string
}

// Zones is the fixed cycle order for Clock.CycleZone.
var Zones = []Zone{
	{Label: "Local"},
	{Label: "UTC", Name: "UTC"},
	{Label: "London", Name: "Europe/London"},
	{Label: "New York", Name: "America/New_York"},
	{Label: "Los Angeles", Name: "America/Los_Angeles"},
	{Label: "Tokyo", Name: "Asia/Tokyo"},
	{Label: "Sydney", Name: "Australia/Sydney"},
}

// Clock shows wall-clock time in an optional named zone.
type Clock struct {
	Timezone    string `json:"timezone,omitempty"`
	ShowSeconds bool   `json:"showSeconds"`
	ShowDate    bool   `json:"showDate"`
	Is24Hour    bool   `json:"is24Hour"`
}

func (Clock) Kind() Kind { return KindClock }

func (c Clock) Validate() error {
	if c.Timezone == "" {
		return nil
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("widget: clock timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured zone, falling back to local time.
func (c Clock) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ZoneLabel names the configured zone for display.
func (c Clock) ZoneLabel() string {
	for _, z := range Zones {
		if z.Name == c.Timezone {
			return z.Label
		}
	}
	return c.Timezone
}

// CycleZone steps to the next zone in Zones, wrapping back to Local. An
// unknown zone returns to Local.
func (c Clock) CycleZone() Clock {
	idx := -1
	for i, z := range Zones {
		if z.Name == c.Timezone {
			idx = i
			break
		}
	}
	c.Timezone = Zones[(idx+1)%len(Zones)].Name
	return c
}

// ClockFace holds the formatted parts of a clock reading.
type ClockFace struct {
	Time    string
	Seconds string
	Date    string
	Zone    string
}

// Face converts now into the configured zone and formats it. Every field
// comes from the converted time, never from local accessors.
func (c Clock) Face(now time.Time) ClockFace {
	t := now.In(c.Location())
	face := ClockFace{
		Seconds: fmt.Sprintf("%02d", t.Second()),
	}
	if c.Is24Hour {
		face.Time = t.Format("15:04")
	} else {
		face.Time = t.Format("03:04 PM")
	}
	if c.ShowDate {
		face.Date = t.Format("Mon, Jan 2")
	}
	if c.Timezone != "" {
		face.Zone = c.ZoneLabel()
	}
	return face
}

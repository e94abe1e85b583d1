package settings

import (
	"encoding/json"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s := Defaults()
	s.Background = BackgroundSunset
	s.GridGap = 40
	s.UserName = "Sam"
	s.ShowDate = false

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != s {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	got, err := Decode([]byte(`{"background":"aurora","userName":"Lee"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Defaults()
	want.Background = BackgroundAurora
	want.UserName = "Lee"
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeRepairsOutOfRange(t *testing.T) {
	got, err := Decode([]byte(`{"tileRounding":99,"gridGap":2,"font":"comic","dockSize":"huge"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TileRounding != MaxRounding || got.GridGap != MinGap {
		t.Fatalf("numbers not clamped: %+v", got)
	}
	if got.Font != FontSans || got.DockSize != DockMedium {
		t.Fatalf("enums not reset: %+v", got)
	}
}

func TestDecodeCorruptReturnsDefaults(t *testing.T) {
	got, err := Decode([]byte(`{not json`))
	if err == nil {
		t.Fatalf("expected error")
	}
	if got != Defaults() {
		t.Fatalf("corrupt input should yield defaults, got %+v", got)
	}
}

func TestSet(t *testing.T) {
	s := Defaults()
	cases := []struct {
		key, value string
		check      func(Settings) bool
	}{
		{"background", "Midnight", func(s Settings) bool { return s.Background == BackgroundMidnight }},
		{"tileRounding", "12.6", func(s Settings) bool { return s.TileRounding == 13 }},
		{"gridGap", "100", func(s Settings) bool { return s.GridGap == MaxGap }},
		{"blur", "high", func(s Settings) bool { return s.BlurStrength == BlurHigh }},
		{"showDate", "false", func(s Settings) bool { return !s.ShowDate }},
		{"userName", "  Ada ", func(s Settings) bool { return s.UserName == "Ada" }},
	}
	for _, tc := range cases {
		next, err := s.Set(tc.key, tc.value)
		if err != nil {
			t.Fatalf("set %s=%s: %v", tc.key, tc.value, err)
		}
		if !tc.check(next) {
			t.Fatalf("set %s=%s gave %+v", tc.key, tc.value, next)
		}
	}
	if _, err := s.Set("font", "wingdings"); err == nil {
		t.Fatalf("expected font error")
	}
	if _, err := s.Set("opacity", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestGreeting(t *testing.T) {
	if g := Defaults().Greeting(); g != "" {
		t.Fatalf("greeting without name = %q", g)
	}
	s, _ := Defaults().Set("name", "Kai")
	if g := s.Greeting(); g != "Good Day, Kai" {
		t.Fatalf("greeting = %q", g)
	}
}

func TestSetNumberExtremes(t *testing.T) {
	s := Defaults()
	cases := []struct {
		value string
		want  int
	}{
		{"1e300", MaxGap},
		{"1e999", MaxGap},
		{"-1e300", MinGap},
		{"47.6", MaxGap},
		{"0", MinGap},
	}
	for _, tc := range cases {
		next, err := s.Set("gridGap", tc.value)
		if err != nil {
			t.Fatalf("gridGap=%s: %v", tc.value, err)
		}
		if next.GridGap != tc.want {
			t.Errorf("gridGap=%s gave %d, want %d", tc.value, next.GridGap, tc.want)
		}
	}
	for _, bad := range []string{"Inf", "-inf", "NaN", "wide"} {
		if _, err := s.Set("tileRounding", bad); err == nil {
			t.Errorf("tileRounding=%s should be rejected", bad)
		}
	}
}

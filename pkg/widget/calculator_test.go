package widget

import (
	"encoding/json"
	"testing"
)

func press(t *testing.T, keys string) Calculator {
	t.Helper()
	c, err := NewCalculator().Press(keys)
	if err != nil {
		t.Fatalf("press %q: %v", keys, err)
	}
	return c
}

func TestCalculatorSequences(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"2+3=", "5"},
		{"10/0=", "Infinity"},
		{"10n/0=", "-Infinity"},
		{"0/0=", "NaN"},
		{"07", "7"},
		{"12*3-6=", "30"},
		{"1.5+1.5=", "3"},
		{"1..5", "1.5"},
		{"9n", "-9"},
		{"0n", "0"},
		{"5+3c", "0"},
		{"0.1+0.2=", "0.30000000000000004"},
		{"2+3==", "5"},
	}
	for _, tc := range cases {
		if got := press(t, tc.keys).Display; got != tc.want {
			t.Fatalf("%q: display = %q, want %q", tc.keys, got, tc.want)
		}
	}
}

func TestCalculatorDigitAfterOperatorReplaces(t *testing.T) {
	c := press(t, "12+")
	if !c.Waiting || c.PendingOp != OpAdd || c.Accumulator != "12" {
		t.Fatalf("unexpected state after operator: %+v", c)
	}
	c, _ = c.Press("4")
	if c.Display != "4" || c.Waiting {
		t.Fatalf("digit after operator should start a new operand, got %+v", c)
	}
}

func TestCalculatorEqualsClearsPendingOperator(t *testing.T) {
	c := press(t, "2+3=")
	if c.PendingOp != OpNone {
		t.Fatalf("pending op = %q", c.PendingOp)
	}
	// A new operator after equals chains from the result.
	c, _ = c.Press("*4=")
	if c.Display != "20" {
		t.Fatalf("chained display = %q", c.Display)
	}
}

func TestCalculatorDecimalWhileWaitingStartsOperand(t *testing.T) {
	c := press(t, "3+.5=")
	if c.Display != "3.5" {
		t.Fatalf("display = %q", c.Display)
	}
}

func TestCalculatorClearResetsEverything(t *testing.T) {
	c := press(t, "7*").Clear()
	if c.Display != "0" || c.HasAccumulator() || c.PendingOp != OpNone || c.Waiting {
		t.Fatalf("clear left state behind: %+v", c)
	}
}

func TestCalculatorShownTruncates(t *testing.T) {
	c := press(t, "1/3=")
	if len(c.Display) <= DisplayWidth {
		t.Fatalf("expected a long display, got %q", c.Display)
	}
	if got := c.Shown(); got != "0.33333333" {
		t.Fatalf("shown = %q", got)
	}
	// Precision is kept underneath.
	c, _ = c.Press("*3=")
	if c.Display != "1" {
		t.Fatalf("display = %q", c.Display)
	}
}

func TestCalculatorRejectsUnknownKey(t *testing.T) {
	if _, err := NewCalculator().Press("2%"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCalculatorPersistsInfinity(t *testing.T) {
	c := press(t, "1/0+")
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Decode(KindCalculator, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := decoded.(Calculator)
	if got.Accumulator != "Infinity" || got.PendingOp != OpAdd {
		t.Fatalf("decoded %+v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		5:       "5",
		-2.5:    "-2.5",
		1e21:    "1e+21",
		1.5e-7:  "1.5e-7",
		123456:  "123456",
		0.00001: "0.00001",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestCalculateKeepsAccumulatorOnTheLeft(t *testing.T) {
	cases := []struct {
		current, input float64
		op             Op
		want           string
	}{
		{10, 4, OpSubtract, "6"},
		{12, 3, OpDivide, "4"},
		{10, 0, OpDivide, "Infinity"},
		{-10, 0, OpDivide, "-Infinity"},
		{0, 0, OpDivide, "NaN"},
		{2, 7, OpNone, "7"},
	}
	for _, tc := range cases {
		if got := FormatNumber(calculate(tc.current, tc.input, tc.op)); got != tc.want {
			t.Errorf("calculate(%v, %v, %q) = %s, want %s", tc.current, tc.input, tc.op, got, tc.want)
		}
	}
}

func TestCalculatorPressAction(t *testing.T) {
	c, _, err := Apply(NewCalculator(), NewAction("press", "9-2="), Env{})
	if err != nil {
		t.Fatalf("press: %v", err)
	}
	if got := c.(Calculator).Display; got != "7" {
		t.Fatalf("display = %q, want 7", got)
	}
}

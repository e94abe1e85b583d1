package widget

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op is a calculator operator key.
type Op string

const (
	OpNone     Op = ""
	OpAdd      Op = "+"
	OpSubtract Op = "-"
	OpMultiply Op = "*"
	OpDivide   Op = "/"
	OpEquals   Op = "="
)

// DisplayWidth is how many characters of the display are presented.
const DisplayWidth = 10

// Calculator is a four-function calculator with a single pending operator
// and no precedence. The accumulator is kept in its display form so that
// Infinity and NaN survive JSON.
type Calculator struct {
	Display     string `json:"display"`
	LastResult  string `json:"lastResult,omitempty"`
	PendingOp   Op     `json:"pendingOp,omitempty"`
	Accumulator string `json:"accumulator,omitempty"`
	Waiting     bool   `json:"waitingForOperand,omitempty"`
}

// NewCalculator returns a cleared calculator.
func NewCalculator() Calculator {
	return Calculator{Display: "0"}
}

func (Calculator) Kind() Kind { return KindCalculator }

func (c Calculator) Validate() error {
	switch c.PendingOp {
	case OpNone, OpAdd, OpSubtract, OpMultiply, OpDivide:
		return nil
	default:
		return fmt.Errorf("widget: calculator pending operator %q", c.PendingOp)
	}
}

func (c Calculator) normalize() Calculator {
	if c.Display == "" {
		c.Display = "0"
	}
	if c.PendingOp == OpEquals {
		c.PendingOp = OpNone
	}
	return c
}

// HasAccumulator reports whether an operand has been captured.
func (c Calculator) HasAccumulator() bool {
	return c.Accumulator != ""
}

// Digit enters 0-9. A waiting calculator starts a new operand; a bare "0"
// is replaced rather than extended.
func (c Calculator) Digit(d int) (Calculator, error) {
	if d < 0 || d > 9 {
		return c, fmt.Errorf("widget: calculator digit %d", d)
	}
	digit := strconv.Itoa(d)
	switch {
	case c.Waiting:
		c.Display = digit
		c.Waiting = false
	case c.Display == "0":
		c.Display = digit
	default:
		c.Display += digit
	}
	return c.settle(), nil
}

// Decimal appends a point once. When waiting for an operand it starts "0.".
func (c Calculator) Decimal() Calculator {
	if c.Waiting {
		c.Display = "0."
		c.Waiting = false
		return c.settle()
	}
	if strings.Contains(c.Display, ".") {
		return c
	}
	c.Display += "."
	return c.settle()
}

// Operator applies the previously pending operator, if any, then records op
// as pending. Equals clears the pending operator.
func (c Calculator) Operator(op Op) (Calculator, error) {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpEquals:
	default:
		return c, fmt.Errorf("widget: calculator operator %q", op)
	}
	input := ParseNumber(c.Display)
	if !c.HasAccumulator() || c.PendingOp == OpNone {
		c.Accumulator = FormatNumber(input)
	} else {
		result := calculate(ParseNumber(c.Accumulator), input, c.PendingOp)
		c.Accumulator = FormatNumber(result)
		c.Display = c.Accumulator
	}
	c.Waiting = true
	if op == OpEquals {
		c.PendingOp = OpNone
	} else {
		c.PendingOp = op
	}
	return c.settle(), nil
}

// Negate flips the sign of the display. Zero and NaN are left alone.
func (c Calculator) Negate() Calculator {
	current := ParseNumber(c.Display)
	if current == 0 || math.IsNaN(current) {
		return c
	}
	c.Display = FormatNumber(-current)
	return c.settle()
}

// Clear resets display, accumulator, operator and waiting flag.
func (c Calculator) Clear() Calculator {
	return NewCalculator().settle()
}

// Press feeds a sequence of keys: digits, ".", "+", "-", "*" or "x" or "×",
// "/" or "÷", "=", "c" (clear) and "n" or "±" (negate). Whitespace is ignored.
func (c Calculator) Press(keys string) (Calculator, error) {
	for _, r := range keys {
		var err error
		switch {
		case r >= '0' && r <= '9':
			c, err = c.Digit(int(r - '0'))
		case r == '.':
			c = c.Decimal()
		case r == '+':
			c, err = c.Operator(OpAdd)
		case r == '-' || r == '−':
			c, err = c.Operator(OpSubtract)
		case r == '*' || r == 'x' || r == '×':
			c, err = c.Operator(OpMultiply)
		case r == '/' || r == '÷':
			c, err = c.Operator(OpDivide)
		case r == '=':
			c, err = c.Operator(OpEquals)
		case r == 'c' || r == 'C':
			c = c.Clear()
		case r == 'n' || r == 'N' || r == '±':
			c = c.Negate()
		case r == ' ' || r == '\t':
		default:
			return c, fmt.Errorf("widget: calculator key %q", string(r))
		}
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// Shown is the display as presented: at most DisplayWidth characters.
func (c Calculator) Shown() string {
	if len(c.Display) <= DisplayWidth {
		return c.Display
	}
	return c.Display[:DisplayWidth]
}

func (c Calculator) settle() Calculator {
	c.LastResult = c.Display
	return c
}

// calculate computes current op input with IEEE semantics; division by
// zero yields ±Inf or NaN.
func calculate(current, input float64, op Op) float64 {
	switch op {
	case OpAdd:
		return current + input
	case OpSubtract:
		return current - input
	case OpMultiply:
		return current * input
	case OpDivide:
		return current / input
	default:
		return input
	}
}

// ParseNumber reads a display string; anything unparsable is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// FormatNumber renders f the way the display shows numbers: shortest
// round-trip decimal, exponent form for very large or very small magnitudes,
// and "Infinity", "-Infinity" or "NaN" for non-finite values.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

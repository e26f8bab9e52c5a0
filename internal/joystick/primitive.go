package joystick

import "fmt"

// PrimitiveType discriminates the kinds of driver primitives a feature can be
// bound to. The empty string is the invalid sentinel.
type PrimitiveType string

const (
	PrimitiveUnknown  PrimitiveType = ""
	PrimitiveButton   PrimitiveType = "button"
	PrimitiveHat      PrimitiveType = "hat"
	PrimitiveSemiAxis PrimitiveType = "semiaxis"
	PrimitiveMotor    PrimitiveType = "motor"
)

// HatDirection is the direction of a hat switch press.
type HatDirection string

const (
	HatUp    HatDirection = "up"
	HatRight HatDirection = "right"
	HatDown  HatDirection = "down"
	HatLeft  HatDirection = "left"
)

// Polarity selects one half of an axis.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// DriverPrimitive is one concrete signal a driver can report: a button, one
// direction of a hat switch, one half of an axis, or a rumble motor. The zero
// value is the invalid sentinel used to clear conflicting assignments.
//
// Constructors normalize the fields that do not apply to a type, so two
// primitives are interchangeable exactly when == reports so.
type DriverPrimitive struct {
	Type         PrimitiveType `json:"type"`
	Index        int           `json:"index"`
	HatDirection HatDirection  `json:"direction,omitempty"`
	Polarity     Polarity      `json:"polarity,omitempty"`
	Range        int           `json:"range,omitempty"`
}

// NewButton returns the primitive for a button index.
func NewButton(index int) DriverPrimitive {
	return DriverPrimitive{Type: PrimitiveButton, Index: index}
}

// NewHat returns the primitive for one direction of a hat switch.
func NewHat(index int, direction HatDirection) DriverPrimitive {
	return DriverPrimitive{Type: PrimitiveHat, Index: index, HatDirection: direction}
}

// NewSemiAxis returns the primitive for one half of an axis. axisRange is 1
// for a half-range semiaxis and 2 for one spanning the full axis travel;
// 0 defaults to 1.
func NewSemiAxis(index int, polarity Polarity, axisRange int) DriverPrimitive {
	if axisRange == 0 {
		axisRange = 1
	}
	return DriverPrimitive{Type: PrimitiveSemiAxis, Index: index, Polarity: polarity, Range: axisRange}
}

// NewMotor returns the primitive for a rumble motor index.
func NewMotor(index int) DriverPrimitive {
	return DriverPrimitive{Type: PrimitiveMotor, Index: index}
}

// Valid reports whether the primitive refers to a real signal.
func (p DriverPrimitive) Valid() bool {
	return p.Type != PrimitiveUnknown
}

// String renders the primitive the way it appears in conflict logs,
// e.g. "button 3", "hat 0 up", "axis +2", "motor 1".
func (p DriverPrimitive) String() string {
	switch p.Type {
	case PrimitiveButton:
		return fmt.Sprintf("button %d", p.Index)
	case PrimitiveHat:
		return fmt.Sprintf("hat %d %s", p.Index, p.HatDirection)
	case PrimitiveSemiAxis:
		sign := "+"
		if p.Polarity == PolarityNegative {
			sign = "-"
		}
		return fmt.Sprintf("axis %s%d", sign, p.Index)
	case PrimitiveMotor:
		return fmt.Sprintf("motor %d", p.Index)
	}
	return "invalid"
}

package joystick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverPrimitiveEquality(t *testing.T) {
	assert.Equal(t, NewButton(3), NewButton(3))
	assert.NotEqual(t, NewButton(3), NewButton(4))
	assert.NotEqual(t, NewButton(3), NewMotor(3))
	assert.NotEqual(t, NewHat(0, HatUp), NewHat(0, HatDown))

	// The default semiaxis range is half range.
	assert.Equal(t, NewSemiAxis(2, PolarityPositive, 0), NewSemiAxis(2, PolarityPositive, 1))
	assert.NotEqual(t, NewSemiAxis(2, PolarityPositive, 1), NewSemiAxis(2, PolarityNegative, 1))
	assert.NotEqual(t, NewSemiAxis(2, PolarityPositive, 1), NewSemiAxis(2, PolarityPositive, 2))
}

func TestDriverPrimitiveValid(t *testing.T) {
	assert.False(t, DriverPrimitive{}.Valid())
	assert.True(t, NewButton(0).Valid())
	assert.True(t, NewHat(0, HatLeft).Valid())
	assert.True(t, NewSemiAxis(1, PolarityNegative, 1).Valid())
	assert.True(t, NewMotor(1).Valid())
}

func TestDriverPrimitiveString(t *testing.T) {
	assert.Equal(t, "button 3", NewButton(3).String())
	assert.Equal(t, "hat 0 up", NewHat(0, HatUp).String())
	assert.Equal(t, "axis +2", NewSemiAxis(2, PolarityPositive, 1).String())
	assert.Equal(t, "axis -2", NewSemiAxis(2, PolarityNegative, 1).String())
	assert.Equal(t, "motor 1", NewMotor(1).String())
	assert.Equal(t, "invalid", DriverPrimitive{}.String())
}

func TestNewFeatureSlotCount(t *testing.T) {
	assert.Len(t, NewFeature("a", FeatureScalar).Primitives, 1)
	assert.Len(t, NewFeature("rumble", FeatureMotor).Primitives, 1)
	assert.Len(t, NewFeature("leftstick", FeatureAnalogStick).Primitives, 4)
	assert.Len(t, NewFeature("accel", FeatureAccelerometer).Primitives, 3)
	assert.Empty(t, NewFeature("x", FeatureUnknown).Primitives)
}

func TestFeaturePrimitiveAccess(t *testing.T) {
	f := NewFeature("leftstick", FeatureAnalogStick)
	f.SetPrimitive(AnalogStickUp, NewSemiAxis(1, PolarityNegative, 1))
	f.SetPrimitive(AnalogStickDown, NewSemiAxis(1, PolarityPositive, 1))

	assert.Equal(t, NewSemiAxis(1, PolarityNegative, 1), f.Primitive(AnalogStickUp))
	assert.Equal(t, DriverPrimitive{}, f.Primitive(AnalogStickRight))

	// Out of range slots read as invalid and ignore writes.
	assert.Equal(t, DriverPrimitive{}, f.Primitive(7))
	f.SetPrimitive(7, NewButton(0))
	assert.Len(t, f.Primitives, 4)
}

func TestFeatureHasValidPrimitive(t *testing.T) {
	f := NewFeature("a", FeatureScalar)
	assert.False(t, f.HasValidPrimitive())
	f.SetPrimitive(ScalarPrimitive, NewButton(0))
	assert.True(t, f.HasValidPrimitive())
}

func TestFeatureClone(t *testing.T) {
	f := NewFeature("a", FeatureScalar)
	f.SetPrimitive(ScalarPrimitive, NewButton(0))

	clone := f.Clone()
	clone.SetPrimitive(ScalarPrimitive, NewButton(9))

	assert.Equal(t, NewButton(0), f.Primitive(ScalarPrimitive))
	assert.Equal(t, NewButton(9), clone.Primitive(ScalarPrimitive))
}

func TestPrimitivesEqual(t *testing.T) {
	a := NewFeature("a", FeatureScalar)
	a.SetPrimitive(ScalarPrimitive, NewButton(0))
	b := NewFeature("cross", FeatureScalar)
	b.SetPrimitive(ScalarPrimitive, NewButton(0))
	assert.True(t, PrimitivesEqual(a, b))

	b.SetPrimitive(ScalarPrimitive, NewButton(1))
	assert.False(t, PrimitivesEqual(a, b))

	motor := NewFeature("rumble", FeatureMotor)
	motor.SetPrimitive(MotorPrimitive, NewMotor(0))
	assert.False(t, PrimitivesEqual(a, motor), "differing feature types never match")

	stick := NewFeature("leftstick", FeatureAnalogStick)
	stick.SetPrimitive(AnalogStickUp, NewSemiAxis(1, PolarityNegative, 1))
	stick.SetPrimitive(AnalogStickDown, NewSemiAxis(1, PolarityPositive, 1))
	stick.SetPrimitive(AnalogStickRight, NewSemiAxis(0, PolarityPositive, 1))
	stick.SetPrimitive(AnalogStickLeft, NewSemiAxis(0, PolarityNegative, 1))

	same := stick.Clone()
	same.Name = "othername"
	assert.True(t, PrimitivesEqual(stick, same), "names do not participate in primitive equality")

	same.SetPrimitive(AnalogStickLeft, NewSemiAxis(2, PolarityNegative, 1))
	assert.False(t, PrimitivesEqual(stick, same), "every direction must match")

	unknown := Feature{Name: "u", Type: FeatureUnknown}
	assert.False(t, PrimitivesEqual(unknown, unknown))
}

func TestProfileMapClone(t *testing.T) {
	a := NewFeature("a", FeatureScalar)
	a.SetPrimitive(ScalarPrimitive, NewButton(0))
	m := ProfileMap{"game.controller.default": {a}}

	clone := m.Clone()
	require.Len(t, clone["game.controller.default"], 1)
	clone["game.controller.default"][0].SetPrimitive(ScalarPrimitive, NewButton(5))

	assert.Equal(t, NewButton(0), m["game.controller.default"][0].Primitive(ScalarPrimitive))
}

package buttonmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputmap/internal/joystick"
)

func TestSanitizeEarliestClaimWins(t *testing.T) {
	f := newFixture(t, nil)

	got := f.bm.sanitize(defaultProfile, []joystick.Feature{
		scalar("a", joystick.NewButton(3)),
		scalar("b", joystick.NewButton(3)),
		scalar("x", joystick.NewButton(4)),
	})

	// "b" lost its only primitive to "a" and is dropped.
	assert.Equal(t, []string{"a", "x"}, names(got))
	assert.Equal(t, joystick.NewButton(3), got[0].Primitive(joystick.ScalarPrimitive))
}

func TestSanitizeClearsLaterDuplicateButKeepsFeature(t *testing.T) {
	f := newFixture(t, nil)

	stick := joystick.NewFeature("leftstick", joystick.FeatureAnalogStick)
	stick.SetPrimitive(joystick.AnalogStickUp, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1))
	stick.SetPrimitive(joystick.AnalogStickDown, joystick.NewSemiAxis(1, joystick.PolarityPositive, 1))
	stick.SetPrimitive(joystick.AnalogStickRight, joystick.NewSemiAxis(0, joystick.PolarityPositive, 1))
	stick.SetPrimitive(joystick.AnalogStickLeft, joystick.NewSemiAxis(0, joystick.PolarityNegative, 1))

	// Claims axis -1, which the stick already owns.
	dup := scalar("a", joystick.NewSemiAxis(1, joystick.PolarityNegative, 1))
	button := scalar("b", joystick.NewButton(5))

	got := f.bm.sanitize(defaultProfile, []joystick.Feature{stick, dup, button})

	require.Equal(t, []string{"leftstick", "b"}, names(got))
	assert.Equal(t, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1), got[0].Primitive(joystick.AnalogStickUp))
}

func TestSanitizeDuplicateWithinOneFeature(t *testing.T) {
	f := newFixture(t, nil)

	stick := joystick.NewFeature("leftstick", joystick.FeatureAnalogStick)
	stick.SetPrimitive(joystick.AnalogStickUp, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1))
	stick.SetPrimitive(joystick.AnalogStickDown, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1))

	got := f.bm.sanitize(defaultProfile, []joystick.Feature{stick})

	require.Len(t, got, 1)
	assert.Equal(t, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1), got[0].Primitive(joystick.AnalogStickUp))
	assert.False(t, got[0].Primitive(joystick.AnalogStickDown).Valid(), "the later slot loses the duplicate")
}

func TestSanitizeIgnoresInvalidSlots(t *testing.T) {
	f := newFixture(t, nil)

	// Two features with empty slots must not conflict on the sentinel.
	a := joystick.NewFeature("leftstick", joystick.FeatureAnalogStick)
	a.SetPrimitive(joystick.AnalogStickUp, joystick.NewSemiAxis(1, joystick.PolarityNegative, 1))
	b := joystick.NewFeature("rightstick", joystick.FeatureAnalogStick)
	b.SetPrimitive(joystick.AnalogStickUp, joystick.NewSemiAxis(3, joystick.PolarityNegative, 1))

	got := f.bm.sanitize(defaultProfile, []joystick.Feature{a, b})
	assert.Equal(t, []string{"leftstick", "rightstick"}, names(got))
}

func TestSanitizeDropsFeatureWithNoValidPrimitives(t *testing.T) {
	f := newFixture(t, nil)

	empty := joystick.NewFeature("ghost", joystick.FeatureScalar)
	got := f.bm.sanitize(defaultProfile, []joystick.Feature{empty, scalar("a", joystick.NewButton(0))})

	assert.Equal(t, []string{"a"}, names(got))
}

func TestSanitizeDoesNotModifyInput(t *testing.T) {
	f := newFixture(t, nil)

	in := []joystick.Feature{
		scalar("a", joystick.NewButton(0)),
		scalar("b", joystick.NewButton(0)),
	}
	f.bm.sanitize(defaultProfile, in)

	assert.Equal(t, joystick.NewButton(0), in[1].Primitive(joystick.ScalarPrimitive))
}

func TestSanitizeIsDeterministic(t *testing.T) {
	f := newFixture(t, nil)

	in := []joystick.Feature{
		scalar("up", joystick.NewHat(0, joystick.HatUp)),
		scalar("forward", joystick.NewHat(0, joystick.HatUp)),
		scalar("a", joystick.NewButton(1)),
		scalar("jump", joystick.NewButton(1)),
	}

	first := f.bm.sanitize(defaultProfile, in)
	second := f.bm.sanitize(defaultProfile, in)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"up", "a"}, names(first))
}

func TestRefreshSanitizesLoadedProfiles(t *testing.T) {
	f := newFixture(t, nil)
	f.store.profiles = joystick.ProfileMap{defaultProfile: {
		scalar("a", joystick.NewButton(0)),
		scalar("b", joystick.NewButton(0)),
	}}

	got := f.bm.GetButtonMap()
	assert.Equal(t, []string{"a"}, names(got[defaultProfile]), "stored conflicts are resolved on load")
}

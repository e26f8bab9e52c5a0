package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/joystick"
)

func scalar(name string, p joystick.DriverPrimitive) joystick.Feature {
	f := joystick.NewFeature(name, joystick.FeatureScalar)
	f.SetPrimitive(joystick.ScalarPrimitive, p)
	return f
}

func stick(name string, xAxis, yAxis int) joystick.Feature {
	f := joystick.NewFeature(name, joystick.FeatureAnalogStick)
	f.SetPrimitive(joystick.AnalogStickUp, joystick.NewSemiAxis(yAxis, joystick.PolarityNegative, 1))
	f.SetPrimitive(joystick.AnalogStickDown, joystick.NewSemiAxis(yAxis, joystick.PolarityPositive, 1))
	f.SetPrimitive(joystick.AnalogStickRight, joystick.NewSemiAxis(xAxis, joystick.PolarityPositive, 1))
	f.SetPrimitive(joystick.AnalogStickLeft, joystick.NewSemiAxis(xAxis, joystick.PolarityNegative, 1))
	return f
}

func names(features []joystick.Feature) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, f.Name)
	}
	return out
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := NewFileStore(zap.NewNop())

	profiles, err := s.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err, "a device that was never mapped is not an error")
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(zap.NewNop())
	path := filepath.Join(t.TempDir(), "buttonmaps", "pad.json")

	in := joystick.ProfileMap{
		DefaultProfile: {
			scalar("a", joystick.NewButton(0)),
			scalar("up", joystick.NewHat(0, joystick.HatUp)),
			scalar("lefttrigger", joystick.NewSemiAxis(2, joystick.PolarityPositive, 1)),
			stick("leftstick", 0, 1),
		},
		"game.controller.snes": {
			scalar("b", joystick.NewButton(0)),
		},
	}
	require.NoError(t, s.Save(path, in))

	out, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	s := NewFileStore(zap.NewNop())
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.json")

	require.NoError(t, s.Save(path, joystick.ProfileMap{}))
	require.NoError(t, s.Save(path, joystick.ProfileMap{DefaultProfile: {scalar("a", joystick.NewButton(0))}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pad.json", entries[0].Name())
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	s := NewFileStore(zap.NewNop())
	path := filepath.Join(t.TempDir(), "pad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.Load(path)
	assert.Error(t, err)
}

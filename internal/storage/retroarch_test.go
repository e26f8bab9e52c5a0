package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/joystick"
)

func TestWriteRetroArchConfig(t *testing.T) {
	dir := t.TempDir()
	dev := device.New(device.Identity{
		Name:      "Xbox Wireless Controller",
		Provider:  "sdl",
		VendorID:  0x045e,
		ProductID: 0x0b13,
	})

	features := []joystick.Feature{
		scalar("a", joystick.NewButton(0)),
		scalar("back", joystick.NewButton(6)),
		scalar("guide", joystick.NewButton(8)),
		scalar("lefttrigger", joystick.NewSemiAxis(2, joystick.PolarityPositive, 1)),
		scalar("up", joystick.NewHat(0, joystick.HatUp)),
		stick("leftstick", 0, 1),
		func() joystick.Feature {
			f := joystick.NewFeature("leftmotor", joystick.FeatureMotor)
			f.SetPrimitive(joystick.MotorPrimitive, joystick.NewMotor(0))
			return f
		}(),
	}

	require.NoError(t, WriteRetroArchConfig(dir, dev, features))

	data, err := os.ReadFile(RetroArchConfigPath(dir, dev))
	require.NoError(t, err)
	cfg := string(data)

	assert.Contains(t, cfg, "input_device = \"Xbox Wireless Controller\"\n")
	assert.Contains(t, cfg, "input_driver = \"sdl\"\n")
	assert.Contains(t, cfg, "input_vendor_id = \"1118\"\n")
	assert.Contains(t, cfg, "input_product_id = \"2835\"\n")
	assert.Contains(t, cfg, "input_a_btn = \"0\"\n")
	assert.Contains(t, cfg, "input_select_btn = \"6\"\n")
	assert.Contains(t, cfg, "input_menu_toggle_btn = \"8\"\n")
	assert.Contains(t, cfg, "input_l2_axis = \"+2\"\n")
	assert.Contains(t, cfg, "input_up_btn = \"h0up\"\n")
	assert.Contains(t, cfg, "input_l_y_minus_axis = \"-1\"\n")
	assert.Contains(t, cfg, "input_l_y_plus_axis = \"+1\"\n")
	assert.Contains(t, cfg, "input_l_x_plus_axis = \"+0\"\n")
	assert.Contains(t, cfg, "input_l_x_minus_axis = \"-0\"\n")

	assert.NotContains(t, cfg, "motor", "motors have no RetroArch binds")
}

func TestWriteRetroArchConfigSkipsUnknownFeatures(t *testing.T) {
	dir := t.TempDir()
	dev := device.New(device.Identity{Name: "Pad"})

	require.NoError(t, WriteRetroArchConfig(dir, dev, []joystick.Feature{
		scalar("holdforseconds", joystick.NewButton(9)),
	}))

	data, err := os.ReadFile(RetroArchConfigPath(dir, dev))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "holdforseconds")
}

func TestRetroArchConfigPathSanitizesName(t *testing.T) {
	dev := device.New(device.Identity{Name: "weird/pad:name"})
	path := RetroArchConfigPath("autoconfig", dev)

	assert.Equal(t, "weird_pad_name.cfg", filepath.Base(path))
}

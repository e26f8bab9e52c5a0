package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/joystick"
)

// RetroArch autoconfig export. RetroArch matches connected pads against
// *.cfg files by device name and vendor/product ids, so one file per device
// is written next to the button maps.

// retroArchButtons maps scalar feature names of the default controller
// profile to RetroArch bind names.
var retroArchButtons = map[string]string{
	"a":            "a",
	"b":            "b",
	"x":            "x",
	"y":            "y",
	"start":        "start",
	"back":         "select",
	"guide":        "menu_toggle",
	"leftbumper":   "l",
	"rightbumper":  "r",
	"lefttrigger":  "l2",
	"righttrigger": "r2",
	"leftthumb":    "l3",
	"rightthumb":   "r3",
	"up":           "up",
	"down":         "down",
	"left":         "left",
	"right":        "right",
}

// retroArchSticks maps analog stick feature names to RetroArch axis stems.
var retroArchSticks = map[string]string{
	"leftstick":  "l",
	"rightstick": "r",
}

// RetroArchConfigPath returns where the autoconfig for a device is written.
func RetroArchConfigPath(dir string, dev *device.Device) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, dev.Name)
	return filepath.Join(dir, name+".cfg")
}

// WriteRetroArchConfig renders the default profile's feature list as a
// RetroArch joypad autoconfig and writes it atomically. Features RetroArch
// has no bind for, motors included, are skipped.
func WriteRetroArchConfig(dir string, dev *device.Device, features []joystick.Feature) error {
	var b strings.Builder
	fmt.Fprintf(&b, "input_device = \"%s\"\n", dev.Name)
	fmt.Fprintf(&b, "input_driver = \"%s\"\n", dev.Provider)
	fmt.Fprintf(&b, "input_vendor_id = \"%d\"\n", dev.VendorID)
	fmt.Fprintf(&b, "input_product_id = \"%d\"\n", dev.ProductID)

	for _, f := range features {
		switch f.Type {
		case joystick.FeatureScalar:
			bind, ok := retroArchButtons[f.Name]
			if !ok {
				continue
			}
			writeBind(&b, "input_"+bind, f.Primitive(joystick.ScalarPrimitive))

		case joystick.FeatureAnalogStick:
			stem, ok := retroArchSticks[f.Name]
			if !ok {
				continue
			}
			// RetroArch's y axis grows downward, so up is the minus half.
			writeBind(&b, fmt.Sprintf("input_%s_y_minus", stem), f.Primitive(joystick.AnalogStickUp))
			writeBind(&b, fmt.Sprintf("input_%s_y_plus", stem), f.Primitive(joystick.AnalogStickDown))
			writeBind(&b, fmt.Sprintf("input_%s_x_plus", stem), f.Primitive(joystick.AnalogStickRight))
			writeBind(&b, fmt.Sprintf("input_%s_x_minus", stem), f.Primitive(joystick.AnalogStickLeft))
		}
	}

	return writeFileAtomic(RetroArchConfigPath(dir, dev), []byte(b.String()))
}

// writeBind appends one bind line. The key suffix and value syntax depend on
// the primitive kind: buttons bind as _btn = "N", hats as _btn = "hN<dir>",
// semiaxes as _axis = "+N" or "-N".
func writeBind(b *strings.Builder, stem string, p joystick.DriverPrimitive) {
	switch p.Type {
	case joystick.PrimitiveButton:
		fmt.Fprintf(b, "%s_btn = \"%d\"\n", stem, p.Index)
	case joystick.PrimitiveHat:
		fmt.Fprintf(b, "%s_btn = \"h%d%s\"\n", stem, p.Index, p.HatDirection)
	case joystick.PrimitiveSemiAxis:
		sign := "+"
		if p.Polarity == joystick.PolarityNegative {
			sign = "-"
		}
		fmt.Fprintf(b, "%s_axis = \"%s%d\"\n", stem, sign, p.Index)
	}
}

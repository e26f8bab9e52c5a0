package device

import (
	"fmt"
	"strings"
)

// Identity carries the stable descriptors of a physical device. Two records
// describe the same device exactly when their identities are equal, element
// counts included.
type Identity struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`
	Buttons   int    `json:"buttons"`
	Hats      int    `json:"hats"`
	Axes      int    `json:"axes"`
}

// Valid reports whether the identity names a device at all.
func (i Identity) Valid() bool {
	return i.Name != ""
}

// ID returns the filesystem and URL safe identifier derived from the
// identity, e.g. "xbox_wireless_controller_045e_0b13".
func (i Identity) ID() string {
	return fmt.Sprintf("%s_%04x_%04x", slug(i.Name), i.VendorID, i.ProductID)
}

func slug(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	if b.Len() == 0 {
		return "device"
	}
	return b.String()
}

// AxisConfiguration is the calibration state learned for one axis.
type AxisConfiguration struct {
	// Center is the rest position of the axis: -1, 0 or +1.
	Center int `json:"center"`
	// Range is 1 when the axis travels half its span from center and 2 when
	// it travels the full span.
	Range int `json:"range"`
}

// AxisSource exposes per-axis properties learned by the input layer.
type AxisSource interface {
	// AxisProperties returns the learned center and range of an axis. ok is
	// false when nothing has been learned about the axis yet.
	AxisProperties(index int) (center, axisRange int, ok bool)
}

// Configuration is the mutable, derived part of a device record.
type Configuration struct {
	Axes map[int]AxisConfiguration `json:"axes,omitempty"`
}

// Axis returns the configuration of one axis.
func (c Configuration) Axis(index int) (AxisConfiguration, bool) {
	a, ok := c.Axes[index]
	return a, ok
}

// LoadAxis refreshes one axis from the input layer. Axes the source knows
// nothing about are left untouched.
func (c *Configuration) LoadAxis(index int, source AxisSource) {
	if source == nil {
		return
	}
	center, axisRange, ok := source.AxisProperties(index)
	if !ok {
		return
	}
	if c.Axes == nil {
		c.Axes = make(map[int]AxisConfiguration)
	}
	c.Axes[index] = AxisConfiguration{Center: center, Range: axisRange}
}

// Clone returns a copy sharing no state with c.
func (c Configuration) Clone() Configuration {
	if c.Axes == nil {
		return Configuration{}
	}
	out := Configuration{Axes: make(map[int]AxisConfiguration, len(c.Axes))}
	for index, axis := range c.Axes {
		out.Axes[index] = axis
	}
	return out
}

// Device couples a stable identity with the configuration derived for it.
// The identity never changes after construction; the configuration is
// replaced as calibration state is learned.
type Device struct {
	Identity
	Config Configuration `json:"configuration"`
}

// New returns a device record with an empty configuration.
func New(identity Identity) *Device {
	return &Device{Identity: identity}
}

// Clone returns a device sharing no mutable state with d.
func (d *Device) Clone() *Device {
	return &Device{Identity: d.Identity, Config: d.Config.Clone()}
}

// SetConfiguration replaces the configuration with a copy of c.
func (d *Device) SetConfiguration(c Configuration) {
	d.Config = c.Clone()
}

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() Identity {
	return Identity{
		Name:      "Xbox Wireless Controller",
		Provider:  "sdl",
		VendorID:  0x045e,
		ProductID: 0x0b13,
		Buttons:   11,
		Hats:      1,
		Axes:      6,
	}
}

func TestIdentityEquality(t *testing.T) {
	a := testIdentity()
	b := testIdentity()
	assert.Equal(t, a, b)

	b.Axes = 8
	assert.NotEqual(t, a, b, "element counts are part of the identity")
}

func TestIdentityID(t *testing.T) {
	assert.Equal(t, "xbox_wireless_controller_045e_0b13", testIdentity().ID())

	odd := Identity{Name: "  8BitDo SN30 Pro+ ", VendorID: 0x2dc8, ProductID: 0x6101}
	assert.Equal(t, "8bitdo_sn30_pro_2dc8_6101", odd.ID())

	empty := Identity{VendorID: 1, ProductID: 2}
	assert.Equal(t, "device_0001_0002", empty.ID())
}

type staticAxes map[int][2]int

func (s staticAxes) AxisProperties(index int) (int, int, bool) {
	props, ok := s[index]
	return props[0], props[1], ok
}

func TestConfigurationLoadAxis(t *testing.T) {
	source := staticAxes{2: {-1, 1}, 5: {1, 2}}

	var c Configuration
	c.LoadAxis(2, source)
	c.LoadAxis(3, source)
	c.LoadAxis(5, source)

	axis, ok := c.Axis(2)
	require.True(t, ok)
	assert.Equal(t, AxisConfiguration{Center: -1, Range: 1}, axis)

	_, ok = c.Axis(3)
	assert.False(t, ok, "axes the source has not seen stay unset")

	axis, ok = c.Axis(5)
	require.True(t, ok)
	assert.Equal(t, AxisConfiguration{Center: 1, Range: 2}, axis)
}

func TestConfigurationClone(t *testing.T) {
	c := Configuration{Axes: map[int]AxisConfiguration{0: {Center: -1, Range: 1}}}
	clone := c.Clone()
	clone.Axes[0] = AxisConfiguration{Center: 1, Range: 2}

	assert.Equal(t, AxisConfiguration{Center: -1, Range: 1}, c.Axes[0])
}

func TestDeviceSetConfiguration(t *testing.T) {
	dev := New(testIdentity())
	src := Configuration{Axes: map[int]AxisConfiguration{4: {Center: -1, Range: 2}}}
	dev.SetConfiguration(src)

	src.Axes[4] = AxisConfiguration{}
	axis, ok := dev.Config.Axis(4)
	require.True(t, ok)
	assert.Equal(t, AxisConfiguration{Center: -1, Range: 2}, axis, "configuration is copied, not shared")
}

func TestRegistryAddDedup(t *testing.T) {
	r := NewRegistry()

	first := r.Add(New(testIdentity()))
	second := r.Add(New(testIdentity()))
	assert.Same(t, first, second)
	assert.Len(t, r.Devices(), 1)

	other := testIdentity()
	other.Name = "DualSense Wireless Controller"
	r.Add(New(other))
	assert.Len(t, r.Devices(), 2)
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	dev := r.Add(New(testIdentity()))

	got, ok := r.Get(dev.ID())
	require.True(t, ok)
	assert.Same(t, dev, got)

	assert.True(t, r.Has(dev.ID()))
	assert.False(t, r.Has("nope"))
	assert.Equal(t, []string{dev.ID()}, r.IDs())
}

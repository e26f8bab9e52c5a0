package joystick

// FeatureType tags what kind of logical input a feature exposes. The type
// fixes how many primitive slots the feature carries and what each slot
// means.
type FeatureType string

const (
	FeatureUnknown       FeatureType = ""
	FeatureScalar        FeatureType = "scalar"
	FeatureMotor         FeatureType = "motor"
	FeatureAnalogStick   FeatureType = "analogstick"
	FeatureAccelerometer FeatureType = "accelerometer"
)

// Primitive slot indexes, per feature type.
const (
	ScalarPrimitive = 0
	MotorPrimitive  = 0

	AnalogStickUp    = 0
	AnalogStickDown  = 1
	AnalogStickRight = 2
	AnalogStickLeft  = 3

	AccelerometerX = 0
	AccelerometerY = 1
	AccelerometerZ = 2
)

// PrimitiveCount returns the number of primitive slots a feature of the
// given type carries. Unknown types carry none.
func PrimitiveCount(t FeatureType) int {
	switch t {
	case FeatureScalar, FeatureMotor:
		return 1
	case FeatureAnalogStick:
		return 4
	case FeatureAccelerometer:
		return 3
	}
	return 0
}

// Feature is one logical input of a controller profile together with the
// driver primitives it is bound to. Slots may hold the invalid sentinel when
// the binding is incomplete.
type Feature struct {
	Name       string            `json:"name"`
	Type       FeatureType       `json:"type"`
	Primitives []DriverPrimitive `json:"primitives"`
}

// NewFeature returns a feature of the given type with every primitive slot
// set to the invalid sentinel.
func NewFeature(name string, t FeatureType) Feature {
	return Feature{Name: name, Type: t, Primitives: make([]DriverPrimitive, PrimitiveCount(t))}
}

// Primitive returns the primitive in the given slot, or the invalid sentinel
// when the slot does not exist.
func (f Feature) Primitive(slot int) DriverPrimitive {
	if slot < 0 || slot >= len(f.Primitives) {
		return DriverPrimitive{}
	}
	return f.Primitives[slot]
}

// SetPrimitive stores a primitive in the given slot. Slots outside the
// feature's range are ignored.
func (f *Feature) SetPrimitive(slot int, p DriverPrimitive) {
	if slot < 0 || slot >= len(f.Primitives) {
		return
	}
	f.Primitives[slot] = p
}

// HasValidPrimitive reports whether at least one slot holds a real signal.
func (f Feature) HasValidPrimitive() bool {
	for _, p := range f.Primitives {
		if p.Valid() {
			return true
		}
	}
	return false
}

// Clone returns a copy of f that shares no state with it.
func (f Feature) Clone() Feature {
	out := f
	out.Primitives = make([]DriverPrimitive, len(f.Primitives))
	copy(out.Primitives, f.Primitives)
	return out
}

// PrimitivesEqual reports whether two features are bound to the same driver
// primitives. Scalars and motors compare their single primitive, analog
// sticks all four directions, accelerometers all three axes. Features of
// differing or unknown type never match.
func PrimitivesEqual(a, b Feature) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case FeatureScalar, FeatureMotor:
		return a.Primitive(ScalarPrimitive) == b.Primitive(ScalarPrimitive)
	case FeatureAnalogStick:
		return a.Primitive(AnalogStickUp) == b.Primitive(AnalogStickUp) &&
			a.Primitive(AnalogStickDown) == b.Primitive(AnalogStickDown) &&
			a.Primitive(AnalogStickRight) == b.Primitive(AnalogStickRight) &&
			a.Primitive(AnalogStickLeft) == b.Primitive(AnalogStickLeft)
	case FeatureAccelerometer:
		return a.Primitive(AccelerometerX) == b.Primitive(AccelerometerX) &&
			a.Primitive(AccelerometerY) == b.Primitive(AccelerometerY) &&
			a.Primitive(AccelerometerZ) == b.Primitive(AccelerometerZ)
	}
	return false
}

// CloneFeatures deep copies a feature list.
func CloneFeatures(features []Feature) []Feature {
	if features == nil {
		return nil
	}
	out := make([]Feature, len(features))
	for i, f := range features {
		out[i] = f.Clone()
	}
	return out
}

// ProfileMap holds the feature list of every controller profile a device has
// been mapped to, keyed by controller profile id.
type ProfileMap map[string][]Feature

// Clone returns a deep copy of the map.
func (m ProfileMap) Clone() ProfileMap {
	out := make(ProfileMap, len(m))
	for id, features := range m {
		out[id] = CloneFeatures(features)
	}
	return out
}

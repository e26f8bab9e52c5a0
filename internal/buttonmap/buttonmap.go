package buttonmap

import (
	"maps"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/joystick"
)

// ResourceLifetime bounds how long a loaded button map is served before the
// backing store is consulted again.
const ResourceLifetime = 2000 * time.Millisecond

// Store loads and saves the button map held at an opaque resource path.
type Store interface {
	// Load returns the stored profile map. A resource that does not exist
	// yet yields an empty map and no error.
	Load(resourcePath string) (joystick.ProfileMap, error)
	// Save persists the full profile map, replacing the stored document.
	Save(resourcePath string, profiles joystick.ProfileMap) error
}

// ButtonMap holds the feature lists of every controller profile one device
// has been mapped to, staged edits included. Edits accumulate in memory
// until SaveButtonMap persists them or RevertButtonMap discards them.
//
// A ButtonMap is not safe for concurrent use; the owner serializes access.
type ButtonMap struct {
	log          *zap.Logger
	store        Store
	resourcePath string
	device       *device.Device
	axes         device.AxisSource

	profiles joystick.ProfileMap
	original joystick.ProfileMap // pre-edit snapshot, nil when no edit is staged
	loaded   time.Time
	modified bool

	now func() time.Time
}

// New returns a button map backed by the given store resource. axes may be
// nil when no input layer is attached.
func New(log *zap.Logger, store Store, resourcePath string, dev *device.Device, axes device.AxisSource) *ButtonMap {
	return &ButtonMap{
		log:          log,
		store:        store,
		resourcePath: resourcePath,
		device:       dev,
		axes:         axes,
		profiles:     joystick.ProfileMap{},
		now:          time.Now,
	}
}

// Device returns the device this map belongs to.
func (m *ButtonMap) Device() *device.Device {
	return m.device
}

// Modified reports whether unsaved edits are staged.
func (m *ButtonMap) Modified() bool {
	return m.modified
}

// GetButtonMap returns the current state, refreshing from the store first
// unless edits are staged. The returned map is owned by the ButtonMap and
// must not be modified by the caller.
func (m *ButtonMap) GetButtonMap() joystick.ProfileMap {
	if !m.modified {
		if err := m.Refresh(); err != nil {
			m.log.Error("button map refresh failed",
				zap.String("resource", m.resourcePath),
				zap.Error(err))
		}
	}
	return m.profiles
}

// Refresh reloads from the store once the cached copy is older than
// ResourceLifetime. Loaded profiles are sanitized before use. On failure the
// in-memory state is left untouched.
func (m *ButtonMap) Refresh() error {
	if m.now().Sub(m.loaded) < ResourceLifetime {
		return nil
	}

	profiles, err := m.store.Load(m.resourcePath)
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = joystick.ProfileMap{}
	}
	for controllerID, features := range profiles {
		profiles[controllerID] = m.sanitize(controllerID, features)
	}

	m.profiles = profiles
	m.loaded = m.now()
	m.original = nil
	return nil
}

// MapFeatures stages an edit to one controller profile. Incoming features
// replace same-named features, win primitive conflicts against the rest of
// the list, and the result stays unsaved until SaveButtonMap. Axis
// calibration is re-read for every axis the incoming features touch.
func (m *ButtonMap) MapFeatures(controllerID string, features []joystick.Feature) {
	if m.original == nil {
		m.original = m.profiles.Clone()
	}

	current := m.profiles[controllerID]

	// Same-named features are replaced outright.
	incoming := make(map[string]struct{}, len(features))
	for _, f := range features {
		incoming[f.Name] = struct{}{}
	}
	kept := current[:0]
	for _, existing := range current {
		if _, ok := incoming[existing.Name]; ok {
			m.log.Debug("overwriting feature",
				zap.String("controller", controllerID),
				zap.String("feature", existing.Name))
			continue
		}
		kept = append(kept, existing)
	}
	current = kept

	// Re-read calibration for every axis the edit touches, whether or not
	// the feature survives conflict resolution.
	for _, f := range features {
		touched := make(map[int]struct{})
		for _, p := range f.Primitives {
			if p.Type == joystick.PrimitiveSemiAxis {
				touched[p.Index] = struct{}{}
			}
		}
		for _, index := range slices.Sorted(maps.Keys(touched)) {
			m.device.Config.LoadAxis(index, m.axes)
		}
	}

	// Incoming features go in front so they win conflicts against the
	// existing assignments.
	merged := make([]joystick.Feature, 0, len(features)+len(current))
	merged = append(merged, features...)
	merged = append(merged, current...)
	merged = m.sanitize(controllerID, merged)
	slices.SortFunc(merged, func(a, b joystick.Feature) int {
		return strings.Compare(a.Name, b.Name)
	})

	m.profiles[controllerID] = merged
	m.modified = true
}

// SaveButtonMap persists the full map. On success the staged snapshot is
// dropped and the cache clock reset; on failure nothing changes.
func (m *ButtonMap) SaveButtonMap() error {
	if err := m.store.Save(m.resourcePath, m.profiles); err != nil {
		return err
	}
	m.loaded = m.now()
	m.original = nil
	m.modified = false
	return nil
}

// RevertButtonMap restores the snapshot taken when the current edit session
// began and drops it. The modified flag stays set, so reads keep serving the
// restored state until the next save. It reports false when there is nothing
// to revert.
func (m *ButtonMap) RevertButtonMap() bool {
	if m.original == nil {
		return false
	}
	m.profiles = m.original
	m.original = nil
	return true
}

// ResetButtonMap clears one controller profile and saves immediately. It
// reports false with a nil error when the profile was already empty.
func (m *ButtonMap) ResetButtonMap(controllerID string) (bool, error) {
	if len(m.profiles[controllerID]) == 0 {
		return false, nil
	}
	m.profiles[controllerID] = []joystick.Feature{}
	if err := m.SaveButtonMap(); err != nil {
		return false, err
	}
	return true, nil
}

package storage

import (
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/axis"
	"github.com/soar/inputmap/internal/buttonmap"
	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/joystick"
	"github.com/soar/inputmap/internal/transform"
)

// DefaultProfile is the controller profile RetroArch autoconfigs are
// exported from.
const DefaultProfile = "game.controller.default"

// Event is one mapping lifecycle change, delivered to the hub for broadcast.
type Event struct {
	Kind         string `json:"kind"`
	DeviceID     string `json:"device_id"`
	ControllerID string `json:"controller_id,omitempty"`
	Features     int    `json:"features,omitempty"`
}

// Options configure a Manager.
type Options struct {
	DataDir          string
	FixTriggers      bool
	RetroArchConfigs bool
	RetroArchDir     string
}

// Manager owns one button map and one axis monitor per device and routes
// every mapping operation through them: reads feed the transformer, writes
// go through the staged-edit path, and saves refresh derived outputs. The
// underlying components are single-threaded; the manager's mutex serializes
// all access to them.
type Manager struct {
	log      *zap.Logger
	store    buttonmap.Store
	registry *device.Registry
	opts     Options

	mu          sync.Mutex
	transformer *transform.Transformer
	maps        map[string]*buttonmap.ButtonMap
	monitors    map[string]*axis.Monitor

	events chan Event
}

func NewManager(log *zap.Logger, store buttonmap.Store, registry *device.Registry, transformer *transform.Transformer, opts Options) *Manager {
	return &Manager{
		log:         log,
		store:       store,
		registry:    registry,
		opts:        opts,
		transformer: transformer,
		maps:        make(map[string]*buttonmap.ButtonMap),
		monitors:    make(map[string]*axis.Monitor),
		events:      make(chan Event, 64),
	}
}

// Events returns the channel lifecycle events are sent on.
func (m *Manager) Events() <-chan Event {
	return m.events
}

func (m *Manager) emit(e Event) {
	select {
	case m.events <- e:
	default:
		// Drop if the channel is full to avoid blocking mapping operations
	}
}

// RegisterDevice adds a device to the registry, adopting the configuration
// of earlier observations with the same identity. Registering a known
// identity returns the existing record.
func (m *Manager) RegisterDevice(identity device.Identity) *device.Device {
	m.mu.Lock()
	created := m.transformer.CreateDevice(device.New(identity))
	m.mu.Unlock()

	dev := m.registry.Add(created)
	if dev == created {
		m.log.Info("device registered",
			zap.String("id", dev.ID()),
			zap.String("name", identity.Name),
			zap.String("provider", identity.Provider))
		m.emit(Event{Kind: "device_added", DeviceID: dev.ID()})
	}
	return dev
}

// Devices returns copies of the registered device records in discovery order.
// Mapping operations rewrite axis calibration on the live records under the
// manager's lock, so only detached copies leave it.
func (m *Manager) Devices() []*device.Device {
	m.mu.Lock()
	defer m.mu.Unlock()

	devices := m.registry.Devices()
	out := make([]*device.Device, len(devices))
	for i, dev := range devices {
		out[i] = dev.Clone()
	}
	return out
}

// Snapshot returns a copy of one device record, detached from future
// calibration updates.
func (m *Manager) Snapshot(dev *device.Device) *device.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	return dev.Clone()
}

func (m *Manager) monitorLocked(dev *device.Device) *axis.Monitor {
	id := dev.ID()
	mon, ok := m.monitors[id]
	if !ok {
		mon = axis.NewMonitor(m.log, m.opts.FixTriggers)
		m.monitors[id] = mon
	}
	return mon
}

// FeedAxis routes one sampled axis value through the device's trigger
// detector and returns the filtered value.
func (m *Manager) FeedAxis(dev *device.Device, axisIndex int, value float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.monitorLocked(dev).Feed(axisIndex, value)
}

func (m *Manager) buttonMapLocked(dev *device.Device) *buttonmap.ButtonMap {
	id := dev.ID()
	bm, ok := m.maps[id]
	if !ok {
		resource := ButtonMapPath(m.opts.DataDir, dev)
		bm = buttonmap.New(m.log, m.store, resource, dev, m.monitorLocked(dev))
		m.maps[id] = bm
	}
	return bm
}

// ButtonMaps returns the full profile map of a device. Every read also feeds
// the learner, so profile correspondences accumulate as maps are consulted.
func (m *Manager) ButtonMaps(dev *device.Device) joystick.ProfileMap {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm := m.buttonMapLocked(dev)
	profiles := bm.GetButtonMap()
	m.transformer.OnAdd(dev, profiles)
	return profiles.Clone()
}

// Features returns the feature list of one controller profile. When the
// device has no mapping for the profile yet but another profile's features
// can be translated, the translation is merged through the staged-edit path,
// persisted and returned.
func (m *Manager) Features(dev *device.Device, controllerID string) []joystick.Feature {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm := m.buttonMapLocked(dev)
	profiles := bm.GetButtonMap()
	m.transformer.OnAdd(dev, profiles)

	if features := profiles[controllerID]; len(features) > 0 {
		return joystick.CloneFeatures(features)
	}

	for _, fromID := range slices.Sorted(maps.Keys(profiles)) {
		if fromID == controllerID || len(profiles[fromID]) == 0 {
			continue
		}
		transformed := m.transformer.TransformFeatures(dev, fromID, controllerID, profiles[fromID])
		if len(transformed) == 0 {
			continue
		}

		m.log.Info("features synthesized from another profile",
			zap.String("device", dev.ID()),
			zap.String("from", fromID),
			zap.String("to", controllerID),
			zap.Int("features", len(transformed)))

		bm.MapFeatures(controllerID, transformed)
		if err := bm.SaveButtonMap(); err != nil {
			m.log.Error("saving synthesized button map failed",
				zap.String("device", dev.ID()),
				zap.Error(err))
		}
		m.emit(Event{Kind: "map_transformed", DeviceID: dev.ID(), ControllerID: controllerID, Features: len(transformed)})
		return joystick.CloneFeatures(bm.GetButtonMap()[controllerID])
	}
	return nil
}

// MapFeatures stages an edit to one device profile and returns the resulting
// feature list.
func (m *Manager) MapFeatures(dev *device.Device, controllerID string, features []joystick.Feature) []joystick.Feature {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm := m.buttonMapLocked(dev)
	// Load before the first edit so the staged snapshot has a baseline.
	bm.GetButtonMap()
	bm.MapFeatures(controllerID, features)

	m.emit(Event{Kind: "features_mapped", DeviceID: dev.ID(), ControllerID: controllerID, Features: len(features)})
	return joystick.CloneFeatures(bm.GetButtonMap()[controllerID])
}

// Save persists a device's staged button map and refreshes derived outputs.
func (m *Manager) Save(dev *device.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm := m.buttonMapLocked(dev)
	if err := bm.SaveButtonMap(); err != nil {
		return err
	}
	m.emit(Event{Kind: "map_saved", DeviceID: dev.ID()})
	m.exportRetroArchLocked(bm)
	return nil
}

// Revert discards a device's staged edits. It reports false when nothing was
// staged.
func (m *Manager) Revert(dev *device.Device) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	reverted := m.buttonMapLocked(dev).RevertButtonMap()
	if reverted {
		m.emit(Event{Kind: "map_reverted", DeviceID: dev.ID()})
	}
	return reverted
}

// Reset clears one controller profile and persists the cleared map. It
// reports false with a nil error when the profile was already empty.
func (m *Manager) Reset(dev *device.Device, controllerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bm := m.buttonMapLocked(dev)
	bm.GetButtonMap()
	reset, err := bm.ResetButtonMap(controllerID)
	if err != nil {
		return false, err
	}
	if reset {
		m.emit(Event{Kind: "map_reset", DeviceID: dev.ID(), ControllerID: controllerID})
		m.exportRetroArchLocked(bm)
	}
	return reset, nil
}

func (m *Manager) exportRetroArchLocked(bm *buttonmap.ButtonMap) {
	if !m.opts.RetroArchConfigs {
		return
	}
	features := bm.GetButtonMap()[DefaultProfile]
	if len(features) == 0 {
		return
	}
	dev := bm.Device()
	if err := WriteRetroArchConfig(m.opts.RetroArchDir, dev, features); err != nil {
		m.log.Error("retroarch export failed", zap.String("device", dev.ID()), zap.Error(err))
		return
	}
	m.log.Info("retroarch autoconfig written",
		zap.String("device", dev.ID()),
		zap.String("path", RetroArchConfigPath(m.opts.RetroArchDir, dev)))
}

// SaveRegistry snapshots the registry to the data directory.
func (m *Manager) SaveRegistry() error {
	return SaveDevices(DevicesPath(m.opts.DataDir), m.Devices())
}

// RestoreRegistry loads the device snapshot back into the registry and
// replays every known device's button map into the learner.
func (m *Manager) RestoreRegistry() error {
	devices, err := LoadDevices(DevicesPath(m.opts.DataDir))
	if err != nil {
		return err
	}
	for _, dev := range devices {
		stored := m.registry.Add(dev)
		m.ButtonMaps(stored)
	}
	if len(devices) > 0 {
		m.log.Info("device registry restored", zap.Int("devices", len(devices)))
	}
	return nil
}

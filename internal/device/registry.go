package device

import "sync"

// Registry is the set of known devices in discovery order, keyed by their
// stable ID for lookup. Identity equality dedups additions. Safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	devices []*Device
	byID    map[string]*Device
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Device)}
}

// Add stores a device and returns the stored record. When a device with an
// equal identity is already registered that record is returned instead and
// dev is discarded.
func (r *Registry) Add(dev *Device) *Device {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.devices {
		if existing.Identity == dev.Identity {
			return existing
		}
	}
	r.devices = append(r.devices, dev)
	r.byID[dev.ID()] = dev
	return dev
}

// Get returns the device with the given ID.
func (r *Registry) Get(id string) (*Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dev, ok := r.byID[id]
	return dev, ok
}

// Has reports whether a device with the given ID is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Devices returns a snapshot of the registered devices in discovery order.
func (r *Registry) Devices() []*Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// IDs returns the IDs of the registered devices in discovery order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.devices))
	for _, dev := range r.devices {
		out = append(out, dev.ID())
	}
	return out
}

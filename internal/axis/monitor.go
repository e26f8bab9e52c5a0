package axis

import "go.uber.org/zap"

// Monitor owns the trigger detectors of one device's axes and exposes the
// learned per-axis properties to the device configuration layer.
//
// A Monitor is not safe for concurrent use; the owner serializes access.
type Monitor struct {
	log      *zap.Logger
	fix      bool
	triggers map[int]*Trigger
}

// NewMonitor returns an empty monitor. fixTriggers enables value
// normalization on anomalous axes.
func NewMonitor(log *zap.Logger, fixTriggers bool) *Monitor {
	return &Monitor{log: log, fix: fixTriggers, triggers: make(map[int]*Trigger)}
}

// Feed runs one sampled value through the axis's detector, creating the
// detector on first contact, and returns the filtered value.
func (m *Monitor) Feed(axisIndex int, value float64) float64 {
	t, ok := m.triggers[axisIndex]
	if !ok {
		t = NewTrigger(m.log, axisIndex, m.fix)
		m.triggers[axisIndex] = t
	}
	return t.Filter(value)
}

// AxisProperties returns the learned center and range of an axis. ok is
// false for axes that never reported a value.
func (m *Monitor) AxisProperties(index int) (center, axisRange int, ok bool) {
	t, ok := m.triggers[index]
	if !ok {
		return 0, 0, false
	}
	return t.Center(), t.Range(), true
}

package axis

import "go.uber.org/zap"

// anomalousMagnitude is how far from zero the first non-discrete value must
// sit before the axis is treated as resting on a pole.
const anomalousMagnitude = 0.5

type triggerState int

const (
	// stateUnknown collects evidence that the axis is a discrete d-pad.
	stateUnknown triggerState = iota
	// stateDiscreteDpad is terminal: the axis reported -1, 0 and +1 and is
	// left alone.
	stateDiscreteDpad
	// stateNotDiscreteDpad is transient: the next step derives the center.
	stateNotDiscreteDpad
	// stateCenterKnown watches for travel past the opposite semiaxis.
	stateCenterKnown
	// stateRangeKnown is terminal for anomalous axes.
	stateRangeKnown
)

// Trigger watches one axis for anomalous trigger behavior: axes that rest at
// -1 or +1 instead of 0, some of which travel the full range to the opposite
// pole. When fixing is enabled anomalous values are normalized back to
// centered-on-zero semantics.
type Trigger struct {
	log       *zap.Logger
	axisIndex int
	fix       bool

	state  triggerState
	center int // -1, 0 or +1
	rng    int // 1 = half range, 2 = full range

	centerSeen   bool
	positiveSeen bool
	negativeSeen bool
}

// NewTrigger returns a detector for one axis. fix enables normalization of
// anomalous values.
func NewTrigger(log *zap.Logger, axisIndex int, fix bool) *Trigger {
	return &Trigger{log: log, axisIndex: axisIndex, fix: fix, rng: 1}
}

// Filter feeds one axis value through the detector and returns it, shifted
// and scaled to 0..1 when the axis is anomalous and fixing is enabled.
func (t *Trigger) Filter(value float64) float64 {
	if t.state == stateUnknown {
		if value == -1 || value == 0 || value == 1 {
			switch value {
			case 0:
				t.centerSeen = true
			case 1:
				t.positiveSeen = true
			case -1:
				t.negativeSeen = true
			}
			if t.centerSeen && t.positiveSeen && t.negativeSeen {
				t.state = stateDiscreteDpad
				t.log.Debug("axis is a discrete d-pad", zap.Int("axis", t.axisIndex))
			}
		} else {
			t.state = stateNotDiscreteDpad
		}
	}

	if t.state == stateNotDiscreteDpad {
		switch {
		case value < -anomalousMagnitude:
			t.center = -1
		case value > anomalousMagnitude:
			t.center = 1
		}
		if t.center != 0 {
			t.log.Debug("anomalous trigger detected",
				zap.Int("axis", t.axisIndex),
				zap.Int("center", t.center),
				zap.Float64("value", value))
		}
		t.state = stateCenterKnown
	}

	if t.IsAnomalous() {
		if t.state == stateCenterKnown {
			// Travel past the opposite semiaxis means the full range is in
			// use, not just the half closest to the center.
			if (t.center == -1 && value > 0) || (t.center == 1 && value < 0) {
				t.rng = 2
				t.state = stateRangeKnown
				t.log.Debug("anomalous trigger travels the full range", zap.Int("axis", t.axisIndex))
			}
		}
		if t.fix {
			value -= float64(t.center)
			if t.rng == 2 {
				value /= 2
			}
		}
	}

	return value
}

// IsAnomalous reports whether the axis rests on a pole rather than at zero.
func (t *Trigger) IsAnomalous() bool {
	return t.center != 0
}

// Center returns the detected rest position: -1, 0 or +1.
func (t *Trigger) Center() int {
	return t.center
}

// Range returns 1 for a half-range axis and 2 once the axis has been seen
// crossing to the opposite pole.
func (t *Trigger) Range() int {
	return t.rng
}

package buttonmap

import (
	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/joystick"
)

// sanitize resolves duplicate primitive assignments within one controller
// profile. List order is precedence order: the first feature to claim a
// primitive keeps it, later claims are cleared to the invalid sentinel, and
// features left without a single valid primitive are dropped. The input
// slice is not modified.
func (m *ButtonMap) sanitize(controllerID string, features []joystick.Feature) []joystick.Feature {
	sanitized := make([]joystick.Feature, 0, len(features))
	for _, feature := range features {
		f := feature.Clone()
		for slot, primitive := range f.Primitives {
			if !primitive.Valid() {
				continue
			}
			owner, claimed := priorClaim(sanitized, f, slot)
			if !claimed {
				continue
			}
			m.log.Warn("primitive assigned twice",
				zap.String("controller", controllerID),
				zap.Stringer("primitive", primitive),
				zap.String("kept", owner),
				zap.String("cleared", f.Name))
			f.Primitives[slot] = joystick.DriverPrimitive{}
		}
		sanitized = append(sanitized, f)
	}

	kept := sanitized[:0]
	for _, f := range sanitized {
		if !f.HasValidPrimitive() {
			m.log.Debug("dropping feature with no valid primitives",
				zap.String("controller", controllerID),
				zap.String("feature", f.Name))
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// priorClaim looks for an equal primitive among the already-sanitized
// features, then among the earlier slots of the feature itself. It returns
// the name of the feature holding the earlier claim.
func priorClaim(earlier []joystick.Feature, f joystick.Feature, slot int) (string, bool) {
	p := f.Primitives[slot]
	for _, existing := range earlier {
		for _, q := range existing.Primitives {
			if q == p {
				return existing.Name, true
			}
		}
	}
	for _, q := range f.Primitives[:slot] {
		if q == p {
			return f.Name, true
		}
	}
	return "", false
}

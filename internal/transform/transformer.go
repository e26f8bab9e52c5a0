package transform

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/device"
	"github.com/soar/inputmap/internal/joystick"
)

// ObservedDeviceLimit caps how many distinct devices feed the learner.
// Beyond it new devices are ignored outright.
const ObservedDeviceLimit = 200

// Transformer learns feature name correspondences between controller
// profiles from observed button maps and synthesizes feature lists for
// profiles a device was never mapped to. Learned state lives in memory only
// and is rebuilt by replaying observations on startup.
//
// A Transformer is not safe for concurrent use; the owner serializes access.
type Transformer struct {
	log      *zap.Logger
	observed []*device.Device
	patterns map[TranslationKey][]*featureMapCount
}

func New(log *zap.Logger) *Transformer {
	return &Transformer{
		log:      log,
		patterns: make(map[TranslationKey][]*featureMapCount),
	}
}

// ObservedDevices returns how many distinct devices have been ingested.
func (t *Transformer) ObservedDevices() int {
	return len(t.observed)
}

// OnAdd ingests one device's button map. A device whose identity was already
// observed is skipped, as is everything once the observation cap is reached.
// Every unordered profile pair of the map contributes one pattern.
func (t *Transformer) OnAdd(dev *device.Device, profiles joystick.ProfileMap) {
	if len(t.observed) >= ObservedDeviceLimit {
		return
	}
	for _, seen := range t.observed {
		if seen.Identity == dev.Identity {
			return
		}
	}
	t.observed = append(t.observed, dev.Clone())

	ids := slices.Sorted(maps.Keys(profiles))
	for i, to := range ids {
		for _, from := range ids[:i] {
			t.addProfilePair(from, profiles[from], to, profiles[to])
		}
	}
}

// addProfilePair learns the feature correspondences between one profile pair
// on one device. from must sort before to; OnAdd guarantees that.
func (t *Transformer) addProfilePair(from string, fromFeatures []joystick.Feature, to string, toFeatures []joystick.Feature) bool {
	if from >= to {
		panic("transform: profile pair not in canonical order")
	}

	var translations FeatureMap
	for _, fromFeature := range fromFeatures {
		for _, toFeature := range toFeatures {
			if joystick.PrimitivesEqual(fromFeature, toFeature) {
				translations = append(translations, FeatureTranslation{
					From: fromFeature.Name,
					To:   toFeature.Name,
				})
				break
			}
		}
	}
	if len(translations) == 0 {
		return false
	}
	translations.sort()

	key := TranslationKey{From: from, To: to}
	for _, pattern := range t.patterns[key] {
		if pattern.translations.Equal(translations) {
			pattern.count++
			return true
		}
	}
	t.patterns[key] = append(t.patterns[key], &featureMapCount{translations: translations, count: 1})
	return true
}

// TransformFeatures converts features of one controller profile to another
// using the most observed pattern for the pair. Features with no learned
// translation are dropped; an unknown pair yields nil.
func (t *Transformer) TransformFeatures(dev *device.Device, fromProfile, toProfile string, features []joystick.Feature) []joystick.Feature {
	reversed := fromProfile >= toProfile
	key := TranslationKey{From: fromProfile, To: toProfile}
	if reversed {
		key = TranslationKey{From: toProfile, To: fromProfile}
	}

	var best *featureMapCount
	bestCount := 0
	for _, pattern := range t.patterns[key] {
		t.log.Debug("candidate pattern",
			zap.String("device", dev.Name),
			zap.String("from", fromProfile),
			zap.String("to", toProfile),
			zap.Int("translations", len(pattern.translations)),
			zap.Int("count", pattern.count))
		if pattern.count > bestCount {
			bestCount = pattern.count
			best = pattern
		}
	}
	if best == nil {
		return nil
	}

	var transformed []joystick.Feature
	for _, translation := range best.translations {
		fromName, toName := translation.From, translation.To
		if reversed {
			fromName, toName = toName, fromName
		}
		for _, feature := range features {
			if feature.Name != fromName {
				continue
			}
			out := feature.Clone()
			out.Name = toName
			transformed = append(transformed, out)
			break
		}
	}
	return transformed
}

// CreateDevice builds the record to register for a device descriptor,
// adopting the configuration of observed devices with an equal identity.
// When several observations match, the latest one wins.
func (t *Transformer) CreateDevice(info *device.Device) *device.Device {
	result := info.Clone()
	for _, seen := range t.observed {
		if seen.Identity == info.Identity {
			result.SetConfiguration(seen.Config)
		}
	}
	return result
}

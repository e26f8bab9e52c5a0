package scan

import (
	"fmt"
	"math"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/device"
)

// Result couples an enumerated device with one initial sample per axis, in
// axis order. The samples seed trigger detection so axes resting on a pole
// are recognized before any mapping touches them.
type Result struct {
	Identity   device.Identity
	AxisValues []float64
}

// Devices enumerates the joysticks attached through SDL3 and reads a single
// snapshot of each axis. The joystick subsystem is shut down again before
// returning. Must be called from the main goroutine.
func Devices(log *zap.Logger) ([]Result, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return nil, fmt.Errorf("sdl init: %s", sdl.GetError())
	}
	defer sdl.Quit()

	var results []Result
	for _, id := range sdl.GetJoysticks() {
		js := sdl.OpenJoystick(id)
		if js == nil {
			log.Warn("failed to open joystick",
				zap.Uint32("instance", uint32(id)),
				zap.String("error", sdl.GetError()))
			continue
		}

		identity := device.Identity{
			Name:      sdl.GetJoystickName(js),
			Provider:  "sdl",
			VendorID:  sdl.GetJoystickVendor(js),
			ProductID: sdl.GetJoystickProduct(js),
			Buttons:   int(sdl.GetNumJoystickButtons(js)),
			Hats:      int(sdl.GetNumJoystickHats(js)),
			Axes:      int(sdl.GetNumJoystickAxes(js)),
		}

		values := make([]float64, 0, identity.Axes)
		for axisIndex := 0; axisIndex < identity.Axes; axisIndex++ {
			raw := sdl.GetJoystickAxis(js, int32(axisIndex))
			values = append(values, normalizeAxis(raw))
		}
		sdl.CloseJoystick(js)

		log.Info("joystick found",
			zap.String("name", identity.Name),
			zap.Uint16("vendor", identity.VendorID),
			zap.Uint16("product", identity.ProductID),
			zap.Int("buttons", identity.Buttons),
			zap.Int("hats", identity.Hats),
			zap.Int("axes", identity.Axes))

		results = append(results, Result{Identity: identity, AxisValues: values})
	}
	return results, nil
}

// normalizeAxis converts a raw SDL axis value (-32768..32767) to -1..1.
func normalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1 {
		v = -1
	}
	return v
}

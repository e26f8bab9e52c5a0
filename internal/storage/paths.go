package storage

import (
	"path/filepath"

	"github.com/soar/inputmap/internal/device"
)

// ButtonMapPath returns the resource path of one device's button map inside
// the data directory.
func ButtonMapPath(dataDir string, dev *device.Device) string {
	return filepath.Join(dataDir, "buttonmaps", dev.ID()+".json")
}

// DevicesPath returns the path of the device registry snapshot.
func DevicesPath(dataDir string) string {
	return filepath.Join(dataDir, "devices.json")
}

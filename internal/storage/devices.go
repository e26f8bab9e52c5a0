package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/soar/inputmap/internal/device"
)

// devicesFile is the on-disk shape of the device registry snapshot.
type devicesFile struct {
	Devices []*device.Device `json:"devices"`
}

// LoadDevices reads the registry snapshot. A missing file yields an empty
// list and no error.
func LoadDevices(path string) ([]*device.Device, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var file devicesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return file.Devices, nil
}

// SaveDevices writes the registry snapshot atomically.
func SaveDevices(path string, devices []*device.Device) error {
	data, err := json.MarshalIndent(devicesFile{Devices: devices}, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(data, '\n'))
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/soar/inputmap/internal/joystick"
)

// FileStore persists button maps as one JSON document per resource path. It
// implements buttonmap.Store.
type FileStore struct {
	log *zap.Logger
}

func NewFileStore(log *zap.Logger) *FileStore {
	return &FileStore{log: log}
}

// buttonMapFile is the on-disk shape of one device's button map.
type buttonMapFile struct {
	Profiles joystick.ProfileMap `json:"profiles"`
}

// Load reads the document at resourcePath. A missing file is a device that
// was never mapped: an empty profile map and no error.
func (s *FileStore) Load(resourcePath string) (joystick.ProfileMap, error) {
	data, err := os.ReadFile(resourcePath)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debug("no stored button map", zap.String("resource", resourcePath))
		return joystick.ProfileMap{}, nil
	}
	if err != nil {
		return nil, err
	}

	var file buttonMapFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resourcePath, err)
	}
	if file.Profiles == nil {
		file.Profiles = joystick.ProfileMap{}
	}
	return file.Profiles, nil
}

// Save writes the full document. It goes through a temporary file and a
// rename so a crash cannot leave a half-written resource behind.
func (s *FileStore) Save(resourcePath string, profiles joystick.ProfileMap) error {
	data, err := json.MarshalIndent(buttonMapFile{Profiles: profiles}, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(resourcePath, append(data, '\n')); err != nil {
		return err
	}
	s.log.Debug("button map saved", zap.String("resource", resourcePath))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

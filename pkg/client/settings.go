package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Settings is what a device remembers between launches. The device id is the
// device's only identity, so losing it orphans the device's participant
// records.
type Settings struct {
	DeviceID  string `json:"deviceId"`
	ServerURL string `json:"serverUrl"`
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewSettingsStore(path string) *settingsStore {
	return &settingsStore{path}
}

type settingsStore struct {
	path string
}

// Load reads the stored settings. A store that has never been saved loads as
// zero settings, not as an error.
func (s settingsStore) Load() (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	err = json.Unmarshal(data, &settings)
	return settings, err
}

func (s settingsStore) Save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

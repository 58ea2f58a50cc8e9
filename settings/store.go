// Package settings persists panel settings (preheat profiles and the soft
// endstop switch) in a diskv key/value directory.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"gopper-panel/standalone"
	"gopper-panel/standalone/config"
)

const (
	keyPreheat      = "preheat"
	keySoftEndstops = "soft_endstops"
)

// ErrNoProfiles is returned when storing an empty profile list
var ErrNoProfiles = errors.New("no preheat profiles")

// Store keeps settings as JSON values under BasePath
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a Store rooted at basePath. The directory is created on the
// first write.
func Open(basePath string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 64 * 1024,
		}),
		basePath: basePath,
	}
}

// BasePath returns the directory holding the values
func (s *Store) BasePath() string { return s.basePath }

// Load returns the stored profiles, or def when nothing was stored yet
func (s *Store) Load(def []standalone.PreheatProfile) ([]standalone.PreheatProfile, error) {
	if !s.d.Has(keyPreheat) {
		return def, nil
	}
	val, err := s.d.Read(keyPreheat)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", keyPreheat, err)
	}
	var profiles []standalone.PreheatProfile
	if err := json.Unmarshal(val, &profiles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyPreheat, err)
	}
	if len(profiles) == 0 {
		return def, nil
	}
	return profiles, nil
}

// StoreSettings writes the profiles. It satisfies panel.SettingsStore.
func (s *Store) StoreSettings(profiles []standalone.PreheatProfile) error {
	if len(profiles) == 0 {
		return ErrNoProfiles
	}
	val, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	if err := s.d.Write(keyPreheat, val); err != nil {
		return fmt.Errorf("write %s: %w", keyPreheat, err)
	}
	return nil
}

// SoftEndstops returns the stored soft endstop switch, or def
func (s *Store) SoftEndstops(def bool) bool {
	val, err := s.d.Read(keySoftEndstops)
	if err != nil {
		return def
	}
	var on bool
	if err := json.Unmarshal(val, &on); err != nil {
		return def
	}
	return on
}

// SetSoftEndstops stores the soft endstop switch
func (s *Store) SetSoftEndstops(on bool) error {
	val, _ := json.Marshal(on)
	return s.d.Write(keySoftEndstops, val)
}

// Reset removes every stored value and writes the default profiles back
func (s *Store) Reset() error {
	if err := s.d.EraseAll(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erase %s: %w", s.basePath, err)
	}
	return s.StoreSettings(config.DefaultPreheat())
}

// Raw returns the stored profile document as written on disk
func (s *Store) Raw() ([]byte, error) {
	return s.d.Read(keyPreheat)
}

// WriteRaw validates and stores a profile document
func (s *Store) WriteRaw(val []byte) error {
	var profiles []standalone.PreheatProfile
	if err := json.Unmarshal(val, &profiles); err != nil {
		return fmt.Errorf("decode %s: %w", keyPreheat, err)
	}
	return s.StoreSettings(profiles)
}

// Package store persists the tool's own preferences in a key-value file, grouped by application ID.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// AppID is the application ID under which the tool stores its keys.
const AppID = "io.github.clambin.Vantage"

// Store is a YAML file mapping application IDs to their keys and values:
//
//	io.github.clambin.Vantage:
//	  conservation-mode: "true"
//	  fan-mode: standard
type Store struct {
	FS    afero.Fs
	Path  string
	AppID string
	lock  sync.Mutex
}

// DefaultPath returns settings.yaml in the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vantage", "settings.yaml"), nil
}

// New returns a Store for AppID in the OS filesystem.
func New(path string) *Store {
	return &Store{Path: path, AppID: AppID}
}

func (s *Store) fs() afero.Fs {
	if s.FS == nil {
		return afero.NewOsFs()
	}
	return s.FS
}

func (s *Store) load() (map[string]map[string]string, error) {
	content, err := afero.ReadFile(s.fs(), s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]map[string]string), nil
	}
	if err != nil {
		return nil, err
	}
	entries := make(map[string]map[string]string)
	if err = yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return entries, nil
}

func (s *Store) save(entries map[string]map[string]string) error {
	content, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	if err = s.fs().MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(s.fs(), s.Path, content, 0644)
}

// Get returns the value of key. The second return value is false if the key was never set.
func (s *Store) Get(key string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	entries, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[s.AppID][key]
	return value, ok, nil
}

// Set stores the values of one or more keys in a single write.
func (s *Store) Set(values map[string]string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	app, ok := entries[s.AppID]
	if !ok {
		app = make(map[string]string)
		entries[s.AppID] = app
	}
	for key, value := range values {
		app[key] = value
	}
	return s.save(entries)
}

func (s *Store) GetBool(key string) (bool, bool, error) {
	value, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, ok, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", key, err)
	}
	return b, true, nil
}

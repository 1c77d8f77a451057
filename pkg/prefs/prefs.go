// Package prefs persists the small client preferences (user identity, magic
// flag, preferred stores) in a local key-value store.
package prefs

import (
	"encoding/json"
	"path/filepath"
	"strconv"

	"github.com/peterbourgon/diskv/v3"
)

// Fixed keys, shared with the browser client of the same backend.
const (
	UserIDKey         = "GROCERY_USER_ID"
	MagicEnabledKey   = "MAGIC_ENABLED"
	SelectedStoresKey = "RAW_DATA_SELECTED_STORES"
)

// Store is the persistence contract for preference values. Values are plain
// strings; composite values are JSON-encoded. Last writer wins.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Load opens a diskv-backed Store rooted under basePath.
func Load(basePath string) Store {
	return &store{d: diskv.New(diskv.Options{
		BasePath:     filepath.Join(basePath, "prefs"),
		CacheSizeMax: 64 * 1024,
	})}
}

type store struct {
	d *diskv.Diskv
}

func (s *store) Get(key string) (string, bool) {
	val, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (s *store) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}

func (s *store) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// GetBool reads a boolean preference; ok is false when the key is unset.
func GetBool(s Store, key string) (value, ok bool) {
	raw, ok := s.Get(key)
	if !ok {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}

// SetBool writes a boolean preference.
func SetBool(s Store, key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}

// GetStrings reads a JSON-encoded string list preference.
func GetStrings(s Store, key string) ([]string, bool) {
	raw, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

// SetStrings writes a string list preference as JSON.
func SetStrings(s Store, key string, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

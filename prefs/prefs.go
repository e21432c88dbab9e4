// Package prefs persists the visitor's display preferences in a key-value
// store under a single fixed key.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Key is the store key holding the serialized Config.
const Key = "seed"

// ErrSave wraps every failure to persist a Config.
var ErrSave = errors.New("prefs: save config")

// Mode is the display mode. The zero value is Light.
type Mode int

const (
	Light Mode = iota
	Dark
)

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m *Mode) Toggle() { *m = m.Toggled() }

func (m Mode) String() string {
	if m == Dark {
		return "Dark"
	}
	return "Light"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Light":
		*m = Light
	case "Dark":
		*m = Dark
	default:
		return fmt.Errorf("prefs: unknown mode %q", b)
	}
	return nil
}

// Config is the persisted preference record.
type Config struct {
	Mode Mode `json:"mode"`
}

func DefaultConfig() Config {
	return Config{Mode: Light}
}

// Store loads and saves a Config through a KV.
type Store struct {
	kv     KV
	logger *slog.Logger
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the stored Config, or DefaultConfig when nothing usable is
// stored. It never fails.
func (s *Store) Load(ctx context.Context) Config {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.logger.Debug("read preferences", "error", err)
		return DefaultConfig()
	}
	if !ok {
		return DefaultConfig()
	}
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Debug("decode preferences", "error", err)
		return DefaultConfig()
	}
	return cfg
}

// Save writes cfg. Errors wrap ErrSave.
func (s *Store) Save(ctx context.Context, cfg Config) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := s.kv.Set(ctx, Key, string(b)); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

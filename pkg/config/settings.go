package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendLoose  = "loose"
	BackendPebble = "pebble"
)

// Settings are the tool's own options, read from a TOML file such as:
//
//	git_dir = ".git"
//	backend = "loose"
//	compression_level = 1
//	log_level = "debug"
type Settings struct {
	GitDir           string `toml:"git_dir"`
	Backend          string `toml:"backend"`
	CompressionLevel int    `toml:"compression_level"`
	LogLevel         string `toml:"log_level"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		GitDir:           ".git",
		Backend:          BackendLoose,
		CompressionLevel: -1,
		LogLevel:         "warn",
	}
}

// LoadSettings decodes path over the defaults. A missing file is not an
// error. Unknown keys are.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("settings %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Validate checks field ranges.
func (s Settings) Validate() error {
	switch s.Backend {
	case BackendLoose, BackendPebble:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.CompressionLevel < -1 || s.CompressionLevel > 9 {
		return fmt.Errorf("compression_level %d out of range [-1, 9]", s.CompressionLevel)
	}
	if strings.TrimSpace(s.GitDir) == "" {
		return fmt.Errorf("git_dir is empty")
	}
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (s Settings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

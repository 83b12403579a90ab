package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file format.
type Format int

const (
	// FormatAuto detects the format from the file extension, falling back
	// to TOML.
	FormatAuto Format = iota

	// FormatTOML is TOML.
	FormatTOML

	// FormatYAML is YAML.
	FormatYAML
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ErrConfig indicates an unreadable or invalid configuration file.
var ErrConfig = errors.New("config")

// Settings holds the defaults a configuration file may set. Empty values
// leave the built-in default in place. Command-line flags override them.
type Settings struct {
	Calendar       string `toml:"calendar"        yaml:"calendar"`
	TimeZone       string `toml:"time_zone"       yaml:"time_zone"`
	Overflow       string `toml:"overflow"        yaml:"overflow"`
	Disambiguation string `toml:"disambiguation"  yaml:"disambiguation"`
	RoundingMode   string `toml:"rounding_mode"   yaml:"rounding_mode"`
	LogLevel       string `toml:"log_level"       yaml:"log_level"`
}

// settingFlags maps each setting to the flag that overrides it.
func (s *Settings) settingFlags() []struct {
	flag string
	dst  *string
} {
	return []struct {
		flag string
		dst  *string
	}{
		{"calendar", &s.Calendar},
		{"time-zone", &s.TimeZone},
		{"overflow", &s.Overflow},
		{"disambiguation", &s.Disambiguation},
		{"rounding-mode", &s.RoundingMode},
		{"log-level", &s.LogLevel},
	}
}

// LoadSettings reads the configuration file at path in format f.
func LoadSettings(path string, f Format) (Settings, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if f == FormatAuto {
		f = detectFormat(path)
	}
	s, err := DecodeSettings(src, f)
	if err != nil {
		return Settings{}, fmt.Errorf("%w in %v", err, path)
	}
	return s, nil
}

// DecodeSettings decodes src in format f. Unknown keys are errors.
func DecodeSettings(src []byte, f Format) (Settings, error) {
	var s Settings
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	case FormatTOML, FormatAuto:
		md, err := toml.Decode(string(src), &s)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Settings{}, fmt.Errorf("%w: unknown keys %v", ErrConfig, strings.Join(keys, ", "))
		}
	default:
		return Settings{}, fmt.Errorf("%w: unknown format %v", ErrConfig, f)
	}
	return s, nil
}

// detectFormat determines the format from the file extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

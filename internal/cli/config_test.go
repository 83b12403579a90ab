package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("auto", FormatAuto.String())
	a.Equal("toml", FormatTOML.String())
	a.Equal("yaml", FormatYAML.String())
	a.Equal("unknown", Format(42).String())

	a.Equal(FormatYAML, detectFormat("x.yaml"))
	a.Equal(FormatYAML, detectFormat("X.YML"))
	a.Equal(FormatTOML, detectFormat("x.toml"))
	a.Equal(FormatTOML, detectFormat("config"))
}

func TestDecodeSettings(t *testing.T) {
	t.Parallel()

	full := Settings{
		Calendar:       "hebrew",
		TimeZone:       "America/New_York",
		Overflow:       "reject",
		Disambiguation: "later",
		RoundingMode:   "halfEven",
		LogLevel:       "debug",
	}

	for _, tc := range []struct {
		name   string
		format Format
		src    string
		exp    Settings
		err    string
	}{
		{
			name:   "toml",
			format: FormatTOML,
			src: `calendar = "hebrew"
time_zone = "America/New_York"
overflow = "reject"
disambiguation = "later"
rounding_mode = "halfEven"
log_level = "debug"
`,
			exp: full,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			src: `calendar: hebrew
time_zone: America/New_York
overflow: reject
disambiguation: later
rounding_mode: halfEven
log_level: debug
`,
			exp: full,
		},
		{name: "empty_toml", format: FormatTOML},
		{name: "empty_yaml", format: FormatYAML},
		{name: "auto_is_toml", format: FormatAuto, src: `calendar = "roc"`, exp: Settings{Calendar: "roc"}},
		{name: "unknown_toml_key", format: FormatTOML, src: `locale = "fr"`, err: "unknown keys locale"},
		{name: "unknown_yaml_key", format: FormatYAML, src: "locale: fr\n", err: "field locale not found"},
		{name: "bad_toml", format: FormatTOML, src: `calendar = `, err: "config: "},
		{name: "bad_yaml", format: FormatYAML, src: "calendar: [", err: "config: "},
		{name: "bad_format", format: Format(9), err: "unknown format unknown"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			r := require.New(t)

			s, err := DecodeSettings([]byte(tc.src), tc.format)
			if tc.err != "" {
				r.ErrorIs(err, ErrConfig)
				r.ErrorContains(err, tc.err)
				return
			}
			r.NoError(err)
			a.Equal(tc.exp, s)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "temporal.yaml")
	r.NoError(os.WriteFile(path, []byte("time_zone: Europe/Paris\n"), 0o600))
	s, err := LoadSettings(path, FormatAuto)
	r.NoError(err)
	a.Equal(Settings{TimeZone: "Europe/Paris"}, s)

	// The explicit format wins over the extension.
	_, err = LoadSettings(path, FormatTOML)
	r.ErrorIs(err, ErrConfig)
	r.ErrorContains(err, path)

	_, err = LoadSettings(filepath.Join(dir, "nonesuch.toml"), FormatAuto)
	r.ErrorIs(err, ErrConfig)
	r.ErrorIs(err, os.ErrNotExist)
}

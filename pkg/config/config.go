package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	lwerrors "github.com/arthur-debert/labelwires/pkg/errors"
	"github.com/arthur-debert/labelwires/pkg/logging"
	"github.com/arthur-debert/labelwires/pkg/paths"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// LABELWIRES_DEFAULT_CSV_DELIMITER=";".
const EnvPrefix = "LABELWIRES_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Settings holds user-facing configuration.
type Settings struct {
	Language                 string `koanf:"language" toml:"language"`
	DefaultWireFileDirectory string `koanf:"default_wire_file_directory" toml:"default_wire_file_directory"`
	DefaultCSVDirectory      string `koanf:"default_csv_directory" toml:"default_csv_directory"`
	DefaultSaveLocation      string `koanf:"default_save_location" toml:"default_save_location"`
	CSVSaveLocation          string `koanf:"csv_save_location" toml:"csv_save_location"`
	DefaultCSVDelimiter      string `koanf:"default_csv_delimiter" toml:"default_csv_delimiter"`
	HistoryLimit             int    `koanf:"history_limit" toml:"history_limit"`

	// FilePath is where the settings were read from, empty when defaults were used.
	FilePath string `koanf:"-" toml:"-"`
}

// Delimiter returns the CSV delimiter as a rune.
func (s *Settings) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(s.DefaultCSVDelimiter)
	return r
}

// Validate checks values that the rest of the program relies on.
func (s *Settings) Validate() error {
	if utf8.RuneCountInString(s.DefaultCSVDelimiter) != 1 {
		return lwerrors.Newf(lwerrors.ErrConfigValid,
			"default_csv_delimiter must be a single character, got %q", s.DefaultCSVDelimiter)
	}
	switch s.Delimiter() {
	case '\r', '\n', '"', utf8.RuneError:
		return lwerrors.Newf(lwerrors.ErrConfigValid,
			"default_csv_delimiter %q cannot be used as a field separator", s.DefaultCSVDelimiter)
	}
	if s.HistoryLimit < 0 {
		return lwerrors.Newf(lwerrors.ErrConfigValid,
			"history_limit must not be negative, got %d", s.HistoryLimit)
	}
	return nil
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// locationDefaults are the defaults that depend on the environment.
func locationDefaults(p paths.Paths) map[string]interface{} {
	return map[string]interface{}{
		"default_save_location": p.DataDir(),
		"csv_save_location":     p.DataDir(),
	}
}

// Defaults returns the settings used when no settings file exists.
func Defaults(p paths.Paths) (*Settings, error) {
	return load(p, "")
}

// Load reads settings from settingsPath. An empty settingsPath means the
// default location from p. A missing file is not an error: defaults are
// used and a warning is logged. An unreadable or invalid file is.
func Load(p paths.Paths, settingsPath string) (*Settings, error) {
	if settingsPath == "" {
		settingsPath = p.SettingsPath()
	}
	return load(p, settingsPath)
}

func load(p paths.Paths, settingsPath string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, lwerrors.Wrap(err, lwerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Location defaults
	if err := k.Load(confmap.Provider(locationDefaults(p), "."), nil); err != nil {
		return nil, lwerrors.Wrap(err, lwerrors.ErrConfigLoad, "failed to load location defaults")
	}

	// 3. Settings file
	var loadedFrom string
	if settingsPath != "" {
		info, err := os.Stat(settingsPath)
		switch {
		case err == nil && info.IsDir():
			return nil, lwerrors.Newf(lwerrors.ErrConfigLoad, "settings path %s is a directory", settingsPath)
		case err == nil:
			if err := k.Load(file.Provider(settingsPath), parserFor(settingsPath)); err != nil {
				logger.Error().Err(err).Str("path", settingsPath).Msg("Failed to parse settings file")
				return nil, lwerrors.Wrapf(err, lwerrors.ErrConfigParse,
					"failed to parse settings from %s", settingsPath)
			}
			loadedFrom = settingsPath
			logger.Info().Str("path", settingsPath).Msg("Loaded settings")
		case os.IsNotExist(err):
			logger.Warn().Str("path", settingsPath).Msg("Settings file not found, using default settings")
		default:
			return nil, lwerrors.Wrapf(err, lwerrors.ErrConfigLoad, "failed to stat settings file %s", settingsPath)
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, lwerrors.Wrap(err, lwerrors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Unmarshal
	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, lwerrors.Wrap(err, lwerrors.ErrConfigParse, "failed to unmarshal settings")
	}
	s.FilePath = loadedFrom

	s.DefaultSaveLocation = paths.ExpandHome(s.DefaultSaveLocation)
	s.CSVSaveLocation = paths.ExpandHome(s.CSVSaveLocation)
	s.DefaultWireFileDirectory = paths.ExpandHome(s.DefaultWireFileDirectory)
	s.DefaultCSVDirectory = paths.ExpandHome(s.DefaultCSVDirectory)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("language", s.Language).
		Str("delimiter", s.DefaultCSVDelimiter).
		Int("historyLimit", s.HistoryLimit).
		Msg("Settings resolved")

	return &s, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

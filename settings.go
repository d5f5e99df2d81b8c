package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the settings directory.
const AppName = "srt"

// Settings is everything read from the settings file.
type Settings struct {
	Instruments  Catalog  `mapstructure:"instruments" yaml:"instruments"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	MaxConflicts int      `mapstructure:"max_conflicts" yaml:"max_conflicts"`
}

// DefaultSettingsPath prefers <Documents>/srt/settings.json and falls back to
// the XDG config directory when that file doesn't exist.
func DefaultSettingsPath() string {
	docs := filepath.Join(xdg.UserDirs.Documents, AppName, "settings.json")
	if pathExists(docs) {
		return docs
	}
	return filepath.Join(xdg.ConfigHome, AppName, "settings.json")
}

// LoadSettings reads and validates a settings file. JSON, YAML and TOML are
// accepted through viper; a file whose top level is a bare array is read as
// the instrument list on its own.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = DefaultSettingsPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings %s", path)
	}

	var settings *Settings
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		settings, err = decodeLegacySettings(data)
	} else {
		settings, err = decodeSettings(path, data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading settings %s", path)
	}

	if settings.MaxConflicts <= 0 {
		settings.MaxConflicts = defaultMaxConflicts
	}
	settings.Extensions = normalizeExtensions(settings.Extensions)

	if err := settings.Instruments.Validate(); err != nil {
		return nil, errors.Wrapf(err, "settings %s", path)
	}
	return settings, nil
}

// newSettingsViper returns a viper instance with the SRT_ env overrides and
// defaults wired up.
func newSettingsViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()
	v.SetDefault("max_conflicts", defaultMaxConflicts)
	return v
}

func decodeSettings(path string, data []byte) (*Settings, error) {
	v := newSettingsViper()
	v.SetConfigType(configType(path))

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}
	return &settings, nil
}

// decodeLegacySettings handles the older format: a JSON array of
// instruments. YAML is a superset of JSON, so yaml.v3 reads it directly.
// Everything else comes from the environment or defaults.
func decodeLegacySettings(data []byte) (*Settings, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "parsing instrument list")
	}

	v := newSettingsViper()
	return &Settings{
		Instruments:  catalog,
		MaxConflicts: v.GetInt("max_conflicts"),
	}, nil
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

// normalizeExtensions lowercases and dot-prefixes each entry.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Package settings manages persistent user settings for the nxcfg CLI.
// Values come from ~/.nxcfg/settings.yaml and may be overridden by
// NXCFG_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides (NXCFG_LOG_LEVEL)
const EnvPrefix = "NXCFG"

// Setting keys
const (
	KeyManifestDir = "manifest_dir"
	KeyOutputDir   = "output_dir"
	KeyAuditLog    = "audit_log"
	KeyMetricsFile = "metrics_file"
	KeyLogFile     = "log_file"
	KeyLogLevel    = "log_level"
	KeyLenient     = "lenient"
)

// Settings holds persistent user preferences
type Settings struct {
	// ManifestDir is searched for <device>.yml when -m is not given
	ManifestDir string `mapstructure:"manifest_dir" yaml:"manifest_dir,omitempty"`

	// OutputDir receives <device>.cfg from generate when -o is not given
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir,omitempty"`

	// AuditLog is the JSON-lines audit file; empty disables auditing
	AuditLog string `mapstructure:"audit_log" yaml:"audit_log,omitempty"`

	// MetricsFile is the Prometheus textfile written after each run
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`

	// LogFile receives a rotated copy of log output
	LogFile string `mapstructure:"log_file" yaml:"log_file,omitempty"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	// Lenient makes generate skip unrecognized values instead of failing
	Lenient bool `mapstructure:"lenient" yaml:"lenient,omitempty"`
}

// Keys returns every setting key, sorted
func Keys() []string {
	keys := []string{KeyManifestDir, KeyOutputDir, KeyAuditLog, KeyMetricsFile, KeyLogFile, KeyLogLevel, KeyLenient}
	sort.Strings(keys)
	return keys
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nxcfg_settings.yaml"
	}
	return filepath.Join(home, ".nxcfg", "settings.yaml")
}

// Load reads settings from the default location, applying environment
// overrides.
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from path, applying environment overrides. A
// missing file yields empty settings.
func LoadFrom(path string) (*Settings, error) {
	return load(path, true)
}

// ReadFile reads settings from path without environment overrides, for
// editing and saving back.
func ReadFile(path string) (*Settings, error) {
	return load(path, false)
}

func load(path string, env bool) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		for _, key := range Keys() {
			if err := v.BindEnv(key); err != nil {
				return nil, err
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Set assigns a setting by key. Boolean settings accept strconv.ParseBool
// spellings.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyManifestDir:
		s.ManifestDir = value
	case KeyOutputDir:
		s.OutputDir = value
	case KeyAuditLog:
		s.AuditLog = value
	case KeyMetricsFile:
		s.MetricsFile = value
	case KeyLogFile:
		s.LogFile = value
	case KeyLogLevel:
		s.LogLevel = value
	case KeyLenient:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		s.Lenient = b
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns a setting by key as text; unset strings are empty.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyManifestDir:
		return s.ManifestDir, nil
	case KeyOutputDir:
		return s.OutputDir, nil
	case KeyAuditLog:
		return s.AuditLog, nil
	case KeyMetricsFile:
		return s.MetricsFile, nil
	case KeyLogFile:
		return s.LogFile, nil
	case KeyLogLevel:
		return s.LogLevel, nil
	case KeyLenient:
		return strconv.FormatBool(s.Lenient), nil
	default:
		return "", fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
}

// GetLogLevel returns the log level (with fallback)
func (s *Settings) GetLogLevel() string {
	if s.LogLevel != "" {
		return s.LogLevel
	}
	return "info"
}

// GetManifestDir returns the manifest directory (with fallback)
func (s *Settings) GetManifestDir() string {
	if s.ManifestDir != "" {
		return s.ManifestDir
	}
	return "host_vars"
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}

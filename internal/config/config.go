package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/domain/sensor"
	"github.com/oshokin/titan-hub/internal/logger"
)

// Config holds the settings shared by the titan-hub commands.
type Config struct {
	// LogFile is the append-only journal that receives alarm records.
	LogFile string `yaml:"log_file"`
	// LogLevel is the minimum level of diagnostics written to stderr.
	LogLevel string `yaml:"log_level"`
	// ArmingPolicy is "clearing" (default) or "sticky".
	ArmingPolicy string `yaml:"arming_policy"`
	// StrictIndex makes simulated input to a missing sensor an error.
	StrictIndex bool `yaml:"strict_index"`
	// SingleInstance refuses to start while another hub process is running.
	SingleInstance bool `yaml:"single_instance"`
	// PollInterval is the delay between cycles of the watch command.
	PollInterval time.Duration `yaml:"poll_interval"`
	// Sensors overrides the starter set. Empty means the default three sensors.
	Sensors []sensor.Sensor `yaml:"sensors,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for hub settings.
	DefaultConfigFilename = "titan-hub-settings.yaml"

	// DefaultLogFilename is the default journal destination.
	DefaultLogFilename = "system_log.txt"

	// DefaultPollInterval is the default delay between watch cycles.
	DefaultPollInterval = 5 * time.Second

	// DefaultFilePermissions is the default file permission for files the hub writes.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for a log level zap does not know.
	errInvalidLogLevel = errors.New("invalid log level")
	// errSensorNameRequired is returned for a configured sensor without a name.
	errSensorNameRequired = errors.New("sensor name must be provided")
)

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		LogFile:        DefaultLogFilename,
		LogLevel:       "info",
		ArmingPolicy:   arming.PolicyClearing.String(),
		SingleInstance: true,
		PollInterval:   DefaultPollInterval,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = DefaultLogFilename
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	if _, err := arming.ParsePolicy(cfg.ArmingPolicy); err != nil {
		return fmt.Errorf("invalid arming policy: %w", err)
	}

	for i, s := range cfg.Sensors {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("sensor %d: %w", i, errSensorNameRequired)
		}
	}

	return nil
}

// StarterSensors returns the configured sensors, or the default set when none are configured.
func (c *Config) StarterSensors() []sensor.Sensor {
	if len(c.Sensors) == 0 {
		return sensor.Defaults()
	}

	return append([]sensor.Sensor(nil), c.Sensors...)
}

// Policy returns the parsed arming policy. Validate must have succeeded.
func (c *Config) Policy() arming.Policy {
	policy, _ := arming.ParsePolicy(c.ArmingPolicy) //nolint:errcheck // Checked by Validate.

	return policy
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase = "roster_config"

	DefaultQueryTimeout      = 5 * time.Second
	DefaultRosterWeekday     = "SA"
	DefaultUpcomingDates     = 10
	DefaultPhoneNumberLength = 8
	DefaultLogDir            = "logs"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL       string        `yaml:"databaseURL" validate:"required"`
	QueryTimeout      time.Duration `yaml:"queryTimeout,omitempty" validate:"min=0"`
	RosterWeekday     string        `yaml:"rosterWeekday,omitempty" validate:"omitempty,oneof=MO TU WE TH FR SA SU"`
	UpcomingDates     int           `yaml:"upcomingDates,omitempty" validate:"min=0,max=52"`
	PhoneNumberLength int           `yaml:"phoneNumberLength,omitempty" validate:"min=0,max=20"`
	LogDir            string        `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// For example, env="test" prefers "roster_config.test.yaml" and falls back to "roster_config.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills in every optional field left empty
func (c *Config) ApplyDefaults() {
	if c.QueryTimeout == 0 {
		c.QueryTimeout = DefaultQueryTimeout
	}
	if c.RosterWeekday == "" {
		c.RosterWeekday = DefaultRosterWeekday
	}
	if c.UpcomingDates == 0 {
		c.UpcomingDates = DefaultUpcomingDates
	}
	if c.PhoneNumberLength == 0 {
		c.PhoneNumberLength = DefaultPhoneNumberLength
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
}

// Validate validates the configuration struct and checks the roster weekday forms a valid rrule
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.RosterWeekday != "" {
		if _, err := rrule.StrToRRule("FREQ=WEEKLY;BYDAY=" + cfg.RosterWeekday); err != nil {
			return fmt.Errorf("invalid rosterWeekday %q: %w", cfg.RosterWeekday, err)
		}
	}

	return nil
}

// findConfigFile searches the current directory and then the home directory,
// preferring the environment specific file in each
func findConfigFile(env string) (string, error) {
	candidates := []string{configFileBase + ".yaml"}
	if env != "" {
		candidates = append([]string{fmt.Sprintf("%s.%s.yaml", configFileBase, env)}, candidates...)
	}

	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range candidates {
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

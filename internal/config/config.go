package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tabiplan configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// ProviderConfig controls which AI backend generates itineraries
type ProviderConfig struct {
	// Backend selects the provider implementation
	// Options: "openai", "scripted"
	Backend string `mapstructure:"backend"`
	// Model is the model name passed to the provider
	Model string `mapstructure:"model"`
	// BaseURL overrides the provider endpoint (for proxies or compatible APIs)
	BaseURL string `mapstructure:"base_url"`
	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `mapstructure:"api_key_env"`
	// TimeoutSeconds bounds a single completion request (0 = no timeout)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// PlannerConfig controls planning-session behavior
type PlannerConfig struct {
	// CacheTTLHours is how long extracted facts stay valid (default: 24)
	CacheTTLHours int `mapstructure:"cache_ttl_hours"`
	// CompletionThreshold is the interview coverage rate that unlocks the
	// phase-transition suggestion (default: 0.6)
	CompletionThreshold float64 `mapstructure:"completion_threshold"`
	// MaxPromptTurns caps how many transcript turns go into a prompt
	MaxPromptTurns int `mapstructure:"max_prompt_turns"`
	// DefaultCurrency is used for new itineraries (default: "JPY")
	DefaultCurrency string `mapstructure:"default_currency"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Enabled turns file logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// PathsConfig controls where tabiplan keeps its data
type PathsConfig struct {
	// DataDir overrides the default data directory (~/.local/share/tabiplan)
	DataDir string `mapstructure:"data_dir"`
	// DatabaseFile is the SQLite file name inside the data directory
	DatabaseFile string `mapstructure:"database_file"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Backend:        "openai",
			Model:          "gpt-4o-mini",
			BaseURL:        "",
			APIKeyEnv:      "OPENAI_API_KEY",
			TimeoutSeconds: 120,
		},
		Planner: PlannerConfig{
			CacheTTLHours:       24,
			CompletionThreshold: 0.6,
			MaxPromptTurns:      20,
			DefaultCurrency:     "JPY",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Paths: PathsConfig{
			DataDir:      "", // Empty means the XDG data directory
			DatabaseFile: "tabiplan.db",
		},
	}
}

// CacheTTL returns the fact-cache TTL as a time.Duration
func (p *PlannerConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLHours) * time.Hour
}

// Timeout returns the provider timeout as a time.Duration (0 means none)
func (p *ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// APIKey reads the provider API key from the configured environment variable
func (p *ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Provider defaults
	viper.SetDefault("provider.backend", defaults.Provider.Backend)
	viper.SetDefault("provider.model", defaults.Provider.Model)
	viper.SetDefault("provider.base_url", defaults.Provider.BaseURL)
	viper.SetDefault("provider.api_key_env", defaults.Provider.APIKeyEnv)
	viper.SetDefault("provider.timeout_seconds", defaults.Provider.TimeoutSeconds)

	// Planner defaults
	viper.SetDefault("planner.cache_ttl_hours", defaults.Planner.CacheTTLHours)
	viper.SetDefault("planner.completion_threshold", defaults.Planner.CompletionThreshold)
	viper.SetDefault("planner.max_prompt_turns", defaults.Planner.MaxPromptTurns)
	viper.SetDefault("planner.default_currency", defaults.Planner.DefaultCurrency)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	// Paths defaults
	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)
	viper.SetDefault("paths.database_file", defaults.Paths.DatabaseFile)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tabiplan")
	}
	// Fall back to ~/.config/tabiplan
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tabiplan"
	}
	return filepath.Join(home, ".config", "tabiplan")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir resolves the data directory, preferring the configured override,
// then XDG_DATA_HOME, then ~/.local/share/tabiplan
func (p *PathsConfig) ResolveDataDir() string {
	if p.DataDir != "" {
		return p.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tabiplan")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tabiplan"
	}
	return filepath.Join(home, ".local", "share", "tabiplan")
}

// DatabasePath returns the full path to the SQLite database file
func (p *PathsConfig) DatabasePath() string {
	return filepath.Join(p.ResolveDataDir(), p.DatabaseFile)
}

// ValidBackends returns the list of valid provider backend values
func ValidBackends() []string {
	return []string{"openai", "scripted"}
}

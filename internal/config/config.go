package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig
	Locale string
	UI     UIConfig
	Log    LogConfig
}

// APIConfig holds the authentication service settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// LogConfig holds logger settings. The terminal belongs to the UI, so logs
// always go to a file.
type LogConfig struct {
	Path   string
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix CARELOGIN_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CARELOGIN_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "carelogin"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CARELOGIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.example.org")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("locale", "en")
	v.SetDefault("ui.toast_duration", 2500*time.Millisecond)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "carelogin", "carelogin.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	raw := strings.TrimSpace(c.API.BaseURL)
	if raw == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: api.base_url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("config: api.base_url must be an absolute URL, got %q", raw)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive")
	}
	if c.UI.ToastDuration <= 0 {
		return fmt.Errorf("config: ui.toast_duration must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

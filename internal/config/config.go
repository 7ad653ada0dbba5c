package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client. Values are read by Viper
// from a config file or environment variables.
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Log      LogConfig      `mapstructure:"log"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// BackendConfig selects and parameterizes the hosted backend.
type BackendConfig struct {
	// Provider is "pocketbase" or "appwrite".
	Provider string `mapstructure:"provider"`
	URL      string `mapstructure:"url"`
	// Timeout is the single global HTTP timeout; there is no per-call
	// override.
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`

	// Appwrite-only settings, ignored for PocketBase.
	Project  string `mapstructure:"project"`
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

type ReminderConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Hour    int  `mapstructure:"hour"`
	Minute  int  `mapstructure:"minute"`
}

// LoadConfig reads configuration from file or environment variables, e.g.
// backend.url -> BACKEND_URL.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("backend.provider", "pocketbase")
	viper.SetDefault("backend.url", "http://127.0.0.1:8090")
	viper.SetDefault("backend.timeout", "15s")
	viper.SetDefault("backend.page_size", 30)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("reminder.enabled", false)
	viper.SetDefault("reminder.hour", 18)
	viper.SetDefault("reminder.minute", 0)

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file; defaults and env vars carry the day.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

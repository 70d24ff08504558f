// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Import struct {
		Path         string `mapstructure:"path"`
		ScanInterval int    `mapstructure:"scan_interval"`
	} `mapstructure:"import"`
	Catalog struct {
		Provider     string `mapstructure:"provider"`
		BatchSize    int    `mapstructure:"batch_size"`
		BatchDelayMs int    `mapstructure:"batch_delay_ms"`
	} `mapstructure:"catalog"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "BOOKHIVE_" prefix.
	// e.g., BOOKHIVE_DATABASE_PATH will override the `database.path` key.
	viper.SetEnvPrefix("BOOKHIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./bookhive.db")
	viper.SetDefault("import.path", "./import")
	viper.SetDefault("import.scan_interval", 60)
	viper.SetDefault("catalog.provider", "googlebooks")
	viper.SetDefault("catalog.batch_size", 3)
	viper.SetDefault("catalog.batch_delay_ms", 500)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

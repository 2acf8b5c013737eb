package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rebelice/uuidview/internal/matcher"
	"github.com/rebelice/uuidview/internal/models"
	"github.com/rebelice/uuidview/internal/plugin"
)

// Config holds all application configuration
type Config struct {
	UUID     plugin.Options          `mapstructure:"uuid"`
	Database models.ConnectionConfig `mapstructure:"database"`
	Display  DisplayConfig           `mapstructure:"display"`
}

type DisplayConfig struct {
	Theme                string `mapstructure:"theme"`
	NullText             string `mapstructure:"null_text"`
	MaxCellDisplayLength int    `mapstructure:"max_cell_display_length"`
	DefaultLimit         int    `mapstructure:"default_limit"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UUID: plugin.DefaultOptions(),
		Database: models.ConnectionConfig{
			Driver:  models.DriverSQLite,
			Host:    "localhost",
			Port:    5432,
			Schema:  "public",
			SSLMode: "prefer",
		},
		Display: DisplayConfig{
			Theme:                "default",
			NullText:             "NULL",
			MaxCellDisplayLength: 100,
			DefaultLimit:         100,
		},
	}
}

// Load loads configuration from the given file, or from the default search
// path when file is empty. A missing default file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "uuidview"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("UUIDVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, GetDefaults())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so environment overrides apply even without a file
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("uuid.convert_to_lowercase", d.UUID.Lowercase)
	v.SetDefault("uuid.applicable_to.table_names", d.UUID.Rules.TableNames)
	v.SetDefault("uuid.applicable_to.column_names", d.UUID.Rules.ColumnNames)
	v.SetDefault("uuid.applicable_to.column_types", d.UUID.Rules.ColumnTypes)
	v.SetDefault("uuid.applicable_to.comments", d.UUID.Rules.Comments)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.name", d.Database.Database)
	v.SetDefault("database.schema", d.Database.Schema)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.ssl_mode", d.Database.SSLMode)
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.null_text", d.Display.NullText)
	v.SetDefault("display.max_cell_display_length", d.Display.MaxCellDisplayLength)
	v.SetDefault("display.default_limit", d.Display.DefaultLimit)
}

// Rules returns the eligibility rules from the uuid section
func (c *Config) Rules() matcher.Rules {
	return c.UUID.Rules
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "uuidview"), nil
}

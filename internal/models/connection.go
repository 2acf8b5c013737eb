package models

// ConnectionConfig represents a database connection configuration
type ConnectionConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"` // sqlite database path
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"name"`
	Schema   string `mapstructure:"schema"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Package config defines the typed configuration structs shared across
// the application. Loading happens in internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GetAddr returns the listen address in host:port form.
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	ShowSource bool   `mapstructure:"show_source"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PortalConfig governs parent portal sessions and login throttling.
type PortalConfig struct {
	SessionTTLHours    int `mapstructure:"session_ttl_hours"`
	BcryptCost         int `mapstructure:"bcrypt_cost"`
	LoginRateLimit     int `mapstructure:"login_rate_limit"`
	LoginRateWindowSec int `mapstructure:"login_rate_window_sec"`
}

// AuthConfig governs staff identity verification. The host platform issues
// the tokens; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type EmailConfig struct {
	Host      string   `mapstructure:"host"`
	Port      int      `mapstructure:"port"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	From      string   `mapstructure:"from"`
	Reviewers []string `mapstructure:"reviewers"`
	Enabled   bool     `mapstructure:"enabled"`
}

// StorageConfig selects where uploaded photo files live. Driver "local"
// keeps them under PhotoDir; driver "gcs" uploads to Bucket, with
// application default credentials unless CredentialsJSON is set.
type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	PhotoDir        string `mapstructure:"photo_dir"`
	Bucket          string `mapstructure:"bucket"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

// AIConfig configures the summary generation backend.
type AIConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// RetentionConfig governs the cleanup sweep cadence.
type RetentionConfig struct {
	TempFileMaxAgeHours int    `mapstructure:"temp_file_max_age_hours"`
	SweepIntervalHours  int    `mapstructure:"sweep_interval_hours"`
	TempDir             string `mapstructure:"temp_dir"`
}

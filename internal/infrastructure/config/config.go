package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/chroma-excellence/chromaqa/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Portal    sharedConfig.PortalConfig    `mapstructure:"portal"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	AI        sharedConfig.AIConfig        `mapstructure:"ai"`
	Storage   sharedConfig.StorageConfig   `mapstructure:"storage"`
	Retention sharedConfig.RetentionConfig `mapstructure:"retention"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("CHROMAQA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "chromaqa_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "change-me-in-production")
	viper.SetDefault("auth.issuer", "chroma-platform")

	// Portal defaults
	viper.SetDefault("portal.session_ttl_hours", 24)
	viper.SetDefault("portal.bcrypt_cost", 12)
	viper.SetDefault("portal.login_rate_limit", 5)
	viper.SetDefault("portal.login_rate_window_sec", 300)

	// Email defaults
	viper.SetDefault("email.host", "localhost")
	viper.SetDefault("email.port", 587)
	viper.SetDefault("email.from", "noreply@chroma.example")
	viper.SetDefault("email.enabled", false)

	// AI defaults
	viper.SetDefault("ai.endpoint", "")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.timeout_seconds", 60)

	// Storage defaults
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.photo_dir", "./data/photos")
	viper.SetDefault("storage.bucket", "")
	viper.SetDefault("storage.credentials_json", "")

	// Retention defaults
	viper.SetDefault("retention.temp_file_max_age_hours", 24)
	viper.SetDefault("retention.sweep_interval_hours", 24)
	viper.SetDefault("retention.temp_dir", "/tmp/chromaqa")
}

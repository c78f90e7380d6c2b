package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DBConnectAttempts int    `mapstructure:"DB_CONNECT_ATTEMPTS"`
	DBAutoMigrate     bool   `mapstructure:"DB_AUTO_MIGRATE"`

	// Flash messages; empty REDIS_URL keeps them in memory
	RedisURL string        `mapstructure:"REDIS_URL"`
	FlashTTL time.Duration `mapstructure:"FLASH_TTL"`
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment take precedence
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "sqlite://inventory.db")
	v.SetDefault("DB_CONNECT_ATTEMPTS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("FLASH_TTL", 5*time.Minute)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

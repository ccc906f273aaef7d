package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Redis  RedisConfig  `mapstructure:"redis"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port" envconfig:"SERVER_PORT" default:"8080"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT" default:"30s"`
	RateLimit      float64       `mapstructure:"rate_limit" envconfig:"SERVER_RATE_LIMIT" default:"100"`
	RateBurst      int           `mapstructure:"rate_burst" envconfig:"SERVER_RATE_BURST" default:"200"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	RefreshSecret      string `mapstructure:"refresh_secret" envconfig:"JWT_REFRESH_SECRET"`
	ExpiryHours        int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS" default:"24"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours" envconfig:"JWT_REFRESH_EXPIRY_HOURS" default:"168"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT" default:"587"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

// Load picks the source for the process configuration. Setting
// CONFIG_ENV_ONLY to a true value skips the config file lookup and
// reads environment variables alone.
func Load() (*Config, error) {
	if envOnly, _ := strconv.ParseBool(os.Getenv("CONFIG_ENV_ONLY")); envOnly {
		return LoadFromEnv()
	}
	return LoadConfig()
}

// LoadConfig reads config.yaml from the working directory or ./config,
// with environment variables taking precedence. A missing file is not
// an error: the registry needs no external services to run.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.rate_limit", 100)
	v.SetDefault("server.rate_burst", 200)
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("jwt.refresh_expiry_hours", 168)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadFromEnv builds the config from environment variables alone, for
// deployments that ship no config file at all.
func LoadFromEnv() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &config, nil
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents runtime configuration for the service.
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`
	Log       LogConfig                 `mapstructure:"log"`
	Databases map[string]DatabaseConfig `mapstructure:"databases"`
	Redis     RedisConfig               `mapstructure:"redis"`
	RateLimit RateLimitConfig           `mapstructure:"rate_limit"`
	Sessions  SessionConfig             `mapstructure:"sessions"`
	Hours     HoursConfig               `mapstructure:"business_hours"`
	Brokerage BrokerageConfig           `mapstructure:"brokerage"`
	Admin     AdminConfig               `mapstructure:"admin"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	Params   string `mapstructure:"params"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig controls the fixed-window throttle on /chat.
type RateLimitConfig struct {
	Window  time.Duration `mapstructure:"window"`
	Ceiling int           `mapstructure:"ceiling"`
	Backend string        `mapstructure:"backend"` // "memory" or "redis"
}

// SessionConfig controls in-memory session retention.
type SessionConfig struct {
	Retention        time.Duration `mapstructure:"retention"`
	SweepProbability float64       `mapstructure:"sweep_probability"`
}

// HoursConfig defines the open window shown to visitors. Days are fixed
// (Sunday through Thursday); only the hours and timezone vary per deployment.
type HoursConfig struct {
	Timezone  string `mapstructure:"timezone"`
	OpenHour  int    `mapstructure:"open_hour"`
	CloseHour int    `mapstructure:"close_hour"`
}

// BrokerageConfig carries the contact details baked into replies and options.
type BrokerageConfig struct {
	Name     string `mapstructure:"name"`
	Phone    string `mapstructure:"phone"`
	WhatsApp string `mapstructure:"whatsapp"`
	Email    string `mapstructure:"email"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

// Load reads configuration from the provided path (defaults to config.yaml in
// the working directory). A missing file is not an error when no explicit path
// was requested; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RateLimit.Backend == "redis" && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("rate_limit.backend is redis but redis.addr is empty")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8090")
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.ceiling", 10)
	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("sessions.retention", time.Hour)
	v.SetDefault("sessions.sweep_probability", 0.1)
	v.SetDefault("business_hours.timezone", "Local")
	v.SetDefault("business_hours.open_hour", 9)
	v.SetDefault("business_hours.close_hour", 18)
	v.SetDefault("brokerage.name", "Prime Estates")
	v.SetDefault("brokerage.phone", "+97235551234")
	v.SetDefault("brokerage.whatsapp", "+972505551234")
	v.SetDefault("brokerage.email", "info@primeestates.example")
}

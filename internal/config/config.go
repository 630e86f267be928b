package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string
	DBname   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the sqlite database file (or ":memory:").
	Path     string `mapstructure:"path"`
	MaxConns int    `mapstructure:"max_conns"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DSN builds the driver specific data source name.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBname, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "records.db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "session:")
	v.SetDefault("session.cookie_name", "session_id")
	v.SetDefault("log.level", "info")
}

// Init reads the config file at path. Secrets come from the environment:
// POSTGRES_PASSWORD is required for the postgres driver, REDIS_PASSWORD is optional.
func Init(path string) (*Config, error) {
	var cfg Config
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file, path = %s, err = %s", path, err.Error())
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cfg: %w", err)
	}

	if cfg.Database.Driver == "postgres" {
		cfg.Database.Password = os.Getenv("POSTGRES_PASSWORD")
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("failed to read POSTGRES_PASSWORD env variable")
		}
	}

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	return &cfg, nil
}

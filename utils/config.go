package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the server.
type Config struct {
	Port               string        `mapstructure:"PORT"`
	DBUser             string        `mapstructure:"DB_USER"`
	DBPass             string        `mapstructure:"DB_PASS"`
	DBHost             string        `mapstructure:"DB_HOST"`
	DBName             string        `mapstructure:"DB_NAME"`
	MongoURI           string        `mapstructure:"MONGODB_URI"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var configKeys = []string{
	"PORT", "DB_USER", "DB_PASS", "DB_HOST", "DB_NAME", "MONGODB_URI",
	"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
}

// LoadConfig reads an optional .env file and then the process environment.
// It reports whether a .env file was found so the caller can log it.
func LoadConfig() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil
	cfg, err := loadConfig(viper.New())
	return cfg, dotenv, err
}

func loadConfig(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "cluster0.sugbz4l.mongodb.net")
	v.SetDefault("DB_NAME", "plate_share_DB")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
		return errors.New("DB_USER and DB_PASS are required when MONGODB_URI is not set")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}
	return nil
}

// DatabaseURI returns MONGODB_URI when set, otherwise an Atlas SRV URI built
// from the credentials and host.
func (c *Config) DatabaseURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost,
		Path:     "/",
		RawQuery: "appName=Cluster0",
	}
	return u.String()
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ModeProduction = "production"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type HTTPConfig struct {
	Port                     int    `yaml:"port"`
	Mode                     string `yaml:"mode"`
	StaticDir                string `yaml:"static_dir"`
	SwaggerDir               string `yaml:"swagger_dir"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int    `yaml:"shutdown_timeout_seconds"`
}

func (h HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}

// ServeFrontend reports whether the compiled frontend is served from StaticDir.
func (h HTTPConfig) ServeFrontend() bool {
	return h.Mode == ModeProduction && h.StaticDir != ""
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`

	RetryDelaySeconds   int `yaml:"retry_delay_seconds"`
	PingIntervalSeconds int `yaml:"ping_interval_seconds"`
	PingTimeoutSeconds  int `yaml:"ping_timeout_seconds"`
	// MaxConnectAttempts of 0 keeps retrying in the background.
	MaxConnectAttempts int `yaml:"max_connect_attempts"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) RetryDelay() time.Duration {
	return time.Duration(d.RetryDelaySeconds) * time.Second
}

func (d DatabaseConfig) PingInterval() time.Duration {
	return time.Duration(d.PingIntervalSeconds) * time.Second
}

func (d DatabaseConfig) PingTimeout() time.Duration {
	return time.Duration(d.PingTimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Addr                    string `yaml:"addr"`
	Password                string `yaml:"password"`
	DB                      int    `yaml:"db"`
	BookingsCacheTTLSeconds int    `yaml:"bookings_cache_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	EventsTopic        string   `yaml:"events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type BookingConfig struct {
	// RecomputePrices ignores client-supplied price fields and prices every write server-side.
	RecomputePrices bool `yaml:"recompute_prices"`
}

type MetricsConfig struct {
	App string `yaml:"app"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:                     5000,
			StaticDir:                "dist",
			ReadHeaderTimeoutSeconds: 20,
			ShutdownTimeoutSeconds:   5,
		},
		Database: DatabaseConfig{
			Driver:              DriverMongo,
			MongoDatabase:       "goa-holidays",
			Host:                "localhost",
			Port:                5432,
			User:                "postgres",
			Password:            "postgres",
			Name:                "goa_holidays",
			SSLMode:             "disable",
			RetryDelaySeconds:   3,
			PingIntervalSeconds: 10,
			PingTimeoutSeconds:  30,
		},
		Redis: RedisConfig{
			BookingsCacheTTLSeconds: 30,
		},
		Kafka: KafkaConfig{
			EventsTopic:        "booking-events",
			NotificationsTopic: "notifications",
			GroupID:            "goa-holidays-notifier",
		},
		Metrics: MetricsConfig{
			App: "goa-holiday-packages",
		},
	}
}

// LoadConfig reads the YAML file over the defaults and then applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.MongoURI = getEnvOrDefault("MONGODB_URI", c.Database.MongoURI)
	c.Database.Driver = getEnvOrDefault("DATABASE_DRIVER", c.Database.Driver)
	c.HTTP.Port = getEnvAsIntOrDefault("PORT", c.HTTP.Port)
	c.HTTP.Mode = getEnvOrDefault("NODE_ENV", c.HTTP.Mode)
	c.HTTP.Mode = getEnvOrDefault("APP_ENV", c.HTTP.Mode)
	c.Redis.Addr = getEnvOrDefault("REDIS_ADDR", c.Redis.Addr)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return errors.New("config: MONGODB_URI (database.mongo_uri) is required for the mongo driver")
		}
		if c.Database.MongoDatabase == "" {
			return errors.New("config: database.mongo_database is required for the mongo driver")
		}
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("config: database.host and database.name are required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: invalid http port %d", c.HTTP.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("environment variable %s=%q is not an integer, using %d", key, value, defaultValue)
	}
	return defaultValue
}

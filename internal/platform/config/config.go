package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Event sink names accepted in EVENT_SINKS.
const (
	SinkLog   = "log"
	SinkPgSQL = "pgsql"
	SinkKafka = "kafka"
	SinkRedis = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	JWTSecret string
	JWTIssuer string

	// InvoiceLockTimeout bounds the wait for a per-invoice lock before a command fails as busy.
	InvoiceLockTimeout time.Duration

	EventSinks   []string
	KafkaBrokers []string
	KafkaTopic   string
	RedisAddr    string
	RedisStream  string

	RateLimit          string
	CORSAllowedOrigins []string
	MigrationsPath     string
}

// HasSink reports whether name is listed in EVENT_SINKS.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.EventSinks {
		if s == name {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "vendor-invoicing")
	viper.SetDefault("INVOICE_LOCK_TIMEOUT", "5s")
	viper.SetDefault("EVENT_SINKS", SinkLog)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "invoice.workflow")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_STREAM", "invoice-workflow")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory invoice store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	lockTimeoutStr := viper.GetString("INVOICE_LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil || lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for INVOICE_LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout)
	}
	cfg.InvoiceLockTimeout = lockTimeout

	cfg.EventSinks = splitList(viper.GetString("EVENT_SINKS"))
	for _, sink := range cfg.EventSinks {
		switch sink {
		case SinkLog, SinkPgSQL, SinkKafka, SinkRedis:
		default:
			return nil, fmt.Errorf("unknown event sink %q in EVENT_SINKS", sink)
		}
	}

	cfg.KafkaBrokers = splitList(viper.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")
	if cfg.HasSink(SinkKafka) && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("EVENT_SINKS includes kafka but KAFKA_BROKERS is empty")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisStream = viper.GetString("REDIS_STREAM")
	if cfg.HasSink(SinkRedis) && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("EVENT_SINKS includes redis but REDIS_ADDR is empty")
	}

	if cfg.HasSink(SinkPgSQL) && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("EVENT_SINKS includes pgsql but PGSQL_URL is empty")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

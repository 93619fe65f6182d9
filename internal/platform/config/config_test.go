package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "")
	t.Setenv("EVENT_SINKS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.InvoiceLockTimeout)
	assert.Equal(t, "invoice.workflow", cfg.KafkaTopic)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/invoicing")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INVOICE_LOCK_TIMEOUT", "250ms")
	t.Setenv("EVENT_SINKS", "log, pgsql,kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.InvoiceLockTimeout)
	assert.Equal(t, []string{"log", "pgsql", "kafka"}, cfg.EventSinks)
	assert.True(t, cfg.HasSink(SinkKafka))
	assert.False(t, cfg.HasSink(SinkRedis))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_InvalidSinks(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown sink", env: map[string]string{"EVENT_SINKS": "carrier-pigeon"}},
		{name: "kafka without brokers", env: map[string]string{"EVENT_SINKS": "kafka", "KAFKA_BROKERS": ""}},
		{name: "redis without address", env: map[string]string{"EVENT_SINKS": "redis", "REDIS_ADDR": ""}},
		{name: "pgsql without database", env: map[string]string{"EVENT_SINKS": "pgsql", "PGSQL_URL": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

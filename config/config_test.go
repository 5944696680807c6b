package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8082", cfg.Server.GRPCPort)
	assert.Equal(t, 8, cfg.WhatsApp.HoursStart)
	assert.Equal(t, 22, cfg.WhatsApp.HoursEnd)
	assert.Equal(t, "America/Santiago", cfg.WhatsApp.Timezone)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Empty(t, cfg.Hotel.SaleWarehouses)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("POS_SALE_WAREHOUSES", "1=wh-rec, 2=wh-rest,bad,x=y")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadEnv()

	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, map[int]string{1: "wh-rec", 2: "wh-rest"}, cfg.Hotel.SaleWarehouses)
	assert.Equal(t, 0, cfg.Redis.DB)
}

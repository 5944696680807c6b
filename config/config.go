package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	SMTP     SMTPConfig
	WhatsApp WhatsAppConfig
	GenAI    GenAIConfig
	Hotel    HotelConfig
}

type ServerConfig struct {
	AppEnv   string
	GRPCPort string
	HTTPPort string
}

func (s ServerConfig) IsDevelopment() bool {
	return s.AppEnv == "development" || s.AppEnv == "dev"
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers   []string
	SaleTopic string
	GroupID   string
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type WhatsAppConfig struct {
	GatewayURL   string
	Token        string
	HoursStart   int
	HoursEnd     int
	Timezone     string
	WebhookToken string
}

type GenAIConfig struct {
	APIKey string
	Model  string
}

type HotelConfig struct {
	Name    string
	Phone   string
	Email   string
	Address string
	// SaleWarehouses maps POS register type id to the warehouse that sales
	// of that register are deducted from.
	SaleWarehouses map[int]string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			GRPCPort: getEnv("GRPC_PORT", ":8082"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "termas"),
			Password:        getEnv("POSTGRES_PASSWORD", "termas"),
			DBName:          getEnv("POSTGRES_DB", "termas_hotel"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			Issuer:    getEnv("JWT_ISSUER", "termas-hotel"),
			TTL:       getEnvDuration("JWT_TTL", 12*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:   getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			SaleTopic: getEnv("KAFKA_TOPIC_SALES", "pos.sales"),
			GroupID:   getEnv("KAFKA_GROUP_INVENTORY", "inventory"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "reservas@termas.cl"),
			FromName: getEnv("SMTP_FROM_NAME", "Hotel Termas"),
		},
		WhatsApp: WhatsAppConfig{
			GatewayURL:   getEnv("WHATSAPP_GATEWAY_URL", "http://localhost:3001"),
			Token:        getEnv("WHATSAPP_GATEWAY_TOKEN", ""),
			HoursStart:   getEnvInt("WHATSAPP_HOURS_START", 8),
			HoursEnd:     getEnvInt("WHATSAPP_HOURS_END", 22),
			Timezone:     getEnv("WHATSAPP_TIMEZONE", "America/Santiago"),
			WebhookToken: getEnv("WHATSAPP_WEBHOOK_TOKEN", ""),
		},
		GenAI: GenAIConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Hotel: HotelConfig{
			Name:           getEnv("HOTEL_NAME", "Hotel Termas"),
			Phone:          getEnv("HOTEL_PHONE", "+56 9 0000 0000"),
			Email:          getEnv("HOTEL_EMAIL", "contacto@termas.cl"),
			Address:        getEnv("HOTEL_ADDRESS", ""),
			SaleWarehouses: getEnvIntMap("POS_SALE_WAREHOUSES", map[int]string{}),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvIntMap parses "1=uuid-a,2=uuid-b". Malformed pairs are skipped.
func getEnvIntMap(key string, fallback map[int]string) map[int]string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	out := map[int]string{}
	for _, pair := range strings.Split(value, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[i] = v
	}
	return out
}

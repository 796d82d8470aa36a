package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Store selects the event store backend: mongo, postgres or memory.
	Store           string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string
	DatabaseDSN     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadDir           string
	UploadMaxAge        time.Duration
	JanitorSchedule     string

	GeminiAPIKey string
	GeminiModel  string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	RedisAddr        string
	RedisPassword    string
	RateLimitEnabled bool
	RateLimitBurst   int
	RateLimitWindow  time.Duration

	RabbitMQURL   string
	BookingsQueue string

	PaymentProvider string
	PaymentDelay    time.Duration
	PaymentGateway  string

	AllowOrigins []string
}

// LoadConfig reads configuration from the environment and, when CONFIG_FILE is
// set, from that file. Environment variables always win.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", file, err)
		}
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		Store:           strings.ToLower(v.GetString("STORE")),
		MongoDBURI:      v.GetString("MONGODB_URI"),
		MongoDBPassword: v.GetString("MONGODB_PASSWORD"),
		MongoDBName:     v.GetString("MONGODB_DATABASE"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),

		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		UploadMaxAge:        v.GetDuration("UPLOAD_MAX_AGE"),
		JanitorSchedule:     v.GetString("JANITOR_SCHEDULE"),

		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),

		SupabaseURL:       v.GetString("SUPABASE_URL"),
		SupabaseAnonKey:   v.GetString("SUPABASE_URL_ANON_KEY"),
		SupabaseJWTSecret: v.GetString("SUPABASE_JWT_SECRET"),

		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RateLimitEnabled: v.GetBool("RATE_LIMIT_ENABLED"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),

		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		BookingsQueue: v.GetString("BOOKINGS_QUEUE"),

		PaymentProvider: strings.ToLower(v.GetString("PAYMENT_PROVIDER")),
		PaymentDelay:    v.GetDuration("PAYMENT_DELAY"),
		PaymentGateway:  v.GetString("PAYMENT_GATEWAY_URL"),

		AllowOrigins: splitList(v.GetString("ALLOW_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE", StoreMongo)
	v.SetDefault("MONGODB_DATABASE", "eventhive")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_AGE", "1h")
	v.SetDefault("JANITOR_SCHEDULE", "@every 15m")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("BOOKINGS_QUEUE", "booking.confirmed")
	v.SetDefault("PAYMENT_PROVIDER", "simulated")
	v.SetDefault("PAYMENT_DELAY", "2s")
	v.SetDefault("ALLOW_ORIGINS", "http://localhost:3000")
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE %q (expected mongo, postgres, memory)", c.Store)
	}

	if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	switch c.PaymentProvider {
	case "simulated":
	case "gateway":
		if c.PaymentGateway == "" {
			return fmt.Errorf("PAYMENT_GATEWAY_URL is required for the gateway payment provider")
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q (expected simulated, gateway)", c.PaymentProvider)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// HasSupabase reports whether a session provider can be built.
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

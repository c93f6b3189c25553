package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	StoreDriver     string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string
	AuthKey         string
	TokenTTL        time.Duration
	BcryptCost      int
	NotiService     string
	NotifyTimeout   time.Duration
	AMQPURL         string
	AMQPExchange    string
	CORSOrigins     []string
	Redis           RedisConfig
	RateLimit       RateLimitConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig drives the token bucket limiter. Capacity tokens are
// available up front and RefillTokens come back every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(getEnvWithDefault("STORE_DRIVER", StoreMongo)),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase: getEnvWithDefault("MONGODB_DATABASE", "mba"),
		AuthKey:         os.Getenv("AUTH_KEY"),
		NotiService:     strings.TrimRight(os.Getenv("NOTI_SERVICE"), "/"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AMQPExchange:    getEnvWithDefault("AMQP_EXCHANGE", "mba.bookings"),
		CORSOrigins:     splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getDuration("NOTIFY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = loadRateLimit(); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.AuthKey == "" {
		return nil, fmt.Errorf("AUTH_KEY is required")
	}
	switch cfg.StoreDriver {
	case StoreMongo:
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required")
		}
		if strings.Contains(cfg.MongoDBURI, "<password>") && cfg.MongoDBPassword == "" {
			return nil, fmt.Errorf("MONGODB_PASSWORD is required")
		}
	case StoreMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongo, StoreMemory, cfg.StoreDriver)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	return cfg, nil
}

func loadRateLimit() (RateLimitConfig, error) {
	rl := RateLimitConfig{
		KeyStrategy: getEnvWithDefault("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:      getEnvWithDefault("RATE_LIMIT_PREFIX", "rl"),
	}
	var err error
	if rl.Enabled, err = getBool("RATE_LIMIT_ENABLED", true); err != nil {
		return rl, err
	}
	if rl.Capacity, err = getInt("RATE_LIMIT_CAPACITY", 60); err != nil {
		return rl, err
	}
	if rl.RefillTokens, err = getInt("RATE_LIMIT_REFILL_TOKENS", 1); err != nil {
		return rl, err
	}
	if rl.RefillInterval, err = getDuration("RATE_LIMIT_REFILL_INTERVAL", time.Second); err != nil {
		return rl, err
	}
	if rl.TTL, err = getDuration("RATE_LIMIT_TTL", 10*time.Minute); err != nil {
		return rl, err
	}
	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 1 {
		rl.RefillTokens = 1
	}
	if rl.RefillInterval <= 0 {
		rl.RefillInterval = time.Second
	}
	if minTTL := 5 * rl.RefillInterval; rl.TTL < minTTL {
		rl.TTL = minTTL
	}
	return rl, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MongoURI substitutes the password placeholder in MONGODB_URI.
func (c *Config) MongoURI() string {
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

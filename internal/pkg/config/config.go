package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// CORSOrigins is a comma separated allow list; "*" allows any origin.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
	// AuthRateLimit is the sustained requests per second allowed per client
	// IP on the register and login endpoints.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`

	Mongo MongoConfig
	Redis RedisConfig
	Hash  HashConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=commodity_market"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type HashConfig struct {
	Cost int `env:"HASH_COST, default=10"`
	// Workers <= 0 means one worker per CPU.
	Workers int `env:"HASH_WORKERS, default=0"`
}

// Development reports whether human-friendly logging should be used.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}

// MustLoad is Load for process start-up, where a bad environment is fatal.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SeedDefaults creates the built-in roles and bootstrap users at
	// startup when the database is empty.
	SeedDefaults bool `env:"SEED_DEFAULTS, default=false"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

// JWTConfig selects the signing mode. HS256 uses Secret; RS256 reads the
// PEM keypair from PrivateKeyFile/PublicKeyFile. The secret is deployment
// configuration, never a compiled-in literal.
type JWTConfig struct {
	Alg            string        `env:"JWT_ALG,    default=HS256"`
	Secret         string        `env:"JWT_SECRET"`
	PrivateKeyFile string        `env:"JWT_PRIVATE_KEY_FILE"`
	PublicKeyFile  string        `env:"JWT_PUBLIC_KEY_FILE"`
	Issuer         string        `env:"JWT_ISSUER, default=base-api-user"`
	TTL            time.Duration `env:"JWT_TTL,    default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ThrottleConfig struct {
	MaxFailures int64         `env:"LOGIN_MAX_FAILURES,   default=5"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Store backends for the credential area.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	APIURL   string `env:"API_URL,   default=http://localhost:5000/api"`
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store      StoreConfig
	Redis      RedisConfig
	DevBackend DevBackendConfig
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=file"`
	Path    string `env:"STORE_PATH"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=admin_console"`
}

// DevBackendConfig drives cmd/devbackend only.
type DevBackendConfig struct {
	Port          string `env:"DEVBACKEND_PORT,  default=5000"`
	JWTSecret     string `env:"JWT_SECRET,       default=dev-secret-change-me"`
	Store         string `env:"DEVBACKEND_STORE, default=memory"`
	MongoURI      string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB,         default=ai_construction"`
	AdminEmail    string `env:"ADMIN_EMAIL,      default=admin@aiconst.com"`
	AdminPassword string `env:"ADMIN_PASSWORD,   default=Admin@123456"`
}

// Development reports whether human-friendly logging should be used.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from the environment using go-envconfig. A .env
// file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from lookuper.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	switch cfg.Store.Backend {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("STORE_BACKEND: unknown backend %q", cfg.Store.Backend)
	}
	return &cfg, nil
}

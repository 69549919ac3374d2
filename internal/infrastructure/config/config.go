package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageBadger = "badger"
	StorageRedis  = "redis"
	StorageMemory = "memory"

	CredentialsKV    = "kv"
	CredentialsMongo = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Storage       StorageConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	ProviderToken ProviderTokenConfig
}

type StorageConfig struct {
	// Backend holds the session slot, and the credentials when
	// CredentialBackend is "kv".
	Backend           string `env:"STORAGE_BACKEND,    default=badger"`
	Namespace         string `env:"STORAGE_NAMESPACE,  default=directory:"`
	BadgerDir         string `env:"BADGER_DIR,         default=./data/badger"`
	CredentialBackend string `env:"CREDENTIAL_BACKEND, default=kv"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=doctor_directory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// ProviderTokenConfig verifies the ID tokens presented to the external
// sign-in endpoint. The endpoint is disabled when Secret is empty.
type ProviderTokenConfig struct {
	Secret string `env:"PROVIDER_TOKEN_SECRET"`
	Issuer string `env:"PROVIDER_TOKEN_ISSUER"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageBadger, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND: unsupported value %q", c.Storage.Backend)
	}
	switch c.Storage.CredentialBackend {
	case CredentialsKV, CredentialsMongo:
	default:
		return fmt.Errorf("CREDENTIAL_BACKEND: unsupported value %q", c.Storage.CredentialBackend)
	}
	return nil
}

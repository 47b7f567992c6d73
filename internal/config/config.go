package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig `envPrefix:"DB_"`
	Redis     RedisConfig    `envPrefix:"REDIS_"`
	JWTSecret string         `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL  time.Duration  `env:"TOKEN_TTL" envDefault:"168h"`
	Storage   string         `env:"STORAGE_DRIVER" envDefault:"mysql"`
	Debug     bool           `env:"APP_DEBUG" envDefault:"false"`
}

type ServerConfig struct {
	Port        int      `env:"SERVER_PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type DatabaseConfig struct {
	Host           string        `env:"HOST" envDefault:"localhost"`
	Port           int           `env:"PORT" envDefault:"3306"`
	User           string        `env:"USER" envDefault:"gouser"`
	Password       string        `env:"PASSWORD" envDefault:"gopass"`
	Name           string        `env:"NAME" envDefault:"jobboard"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	OpTimeout      time.Duration `env:"OP_TIMEOUT" envDefault:"5s"`
	AutoMigrate    bool          `env:"AUTO_MIGRATE" envDefault:"true"`
}

// RedisConfig is optional; an empty Addr disables the user cache.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	UserTTL  time.Duration `env:"USER_TTL" envDefault:"10m"`
}

// Load reads an optional .env file and then parses the environment.
// A missing or empty JWT_SECRET is a configuration error.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
		log.Debug().Msg("no .env file found, using process environment")
	}

	return Parse(env.Options{})
}

// Parse builds a Config from the environment using the given options.
// Tests pass Environment to avoid touching the process environment.
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	switch cfg.Storage {
	case StorageMySQL, StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q", cfg.Storage)
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %s", cfg.TokenTTL)
	}

	return cfg, nil
}

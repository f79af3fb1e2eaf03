package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env    string `env:"APP_ENV" envDefault:"development"`
	Server ServerConfig
	Mongo  MongoConfig
	JWT    JWTConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type MongoConfig struct {
	URL      string        `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB" envDefault:"shop"`
	Timeout  time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	Expiry time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`
}

func (c JWTConfig) SecretBytes() []byte {
	return []byte(c.Secret)
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Without a configured secret, every outstanding token dies with the
	// process.
	if cfg.JWT.Secret == "" {
		secret, err := generateSecret(64)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWT.Secret = secret
	}

	return cfg, nil
}

func generateSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTPAddr  string
	MongoURI  string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
	Env       string // dev|prod
}

// Load reads configuration from the environment. The signing secret and
// database URI have no sane defaults: serving without them is not an option,
// so their absence is fatal.
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":3000"),
		MongoURI:  mustEnv("MONGO_URI"),
		DBName:    getenv("DB_NAME", "lectures"),
		JWTSecret: mustEnv("JWT_SECRET"),
		TokenTTL:  ttl,
		LogLevel:  getenv("LOG_LEVEL", "info"),
		Env:       getenv("ENV", "dev"),
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

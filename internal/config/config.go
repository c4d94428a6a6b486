// Package config reads the application configuration from the
// environment, with a .env file as an optional override source.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPAddr      string
	DBPath        string
	RabbitURL     string
	Exchange      string
	SessionCookie string
	DeliveryDays  int
	Env           string
	SeedOnStart   bool
	TemplateGlob  string
}

// Load reads .env when present, then the environment, and fills in
// defaults.
func Load() Config {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      env("HTTP_ADDR", ":3000"),
		DBPath:        env("DB_PATH", "bookshop.db"),
		RabbitURL:     os.Getenv("RABBITMQ_URL"),
		Exchange:      env("RABBITMQ_EXCHANGE", "bookshop.events"),
		SessionCookie: env("SESSION_COOKIE", "bookshop_session"),
		DeliveryDays:  envInt("DELIVERY_DAYS", 7),
		Env:           env("ENV", "dev"),
		SeedOnStart:   envBool("SEED_ON_START", true),
		TemplateGlob:  env("TEMPLATE_GLOB", "web/templates/*/*.html"),
	}
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBPath).
		Str("env", cfg.Env).
		Int("delivery_days", cfg.DeliveryDays).
		Msg("config loaded")
	return cfg
}

func (c Config) Production() bool { return c.Env == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

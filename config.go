package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-placer/internal/httpserver"
	"github.com/robalobadob/wordle-placer/internal/placement"
	"github.com/robalobadob/wordle-placer/internal/session"
)

// config is everything main reads from the environment (and .env).
type config struct {
	Port     string
	LogLevel string
	Store    string // "memory" | "sqlite"
	DBPath   string
	Server   httpserver.Config
}

func loadConfig() config {
	prod := os.Getenv("NODE_ENV") == "production"
	return config{
		Port:     getEnv("PORT", "5175"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Store:    strings.ToLower(getEnv("STORE", "memory")),
		DBPath:   getEnv("DB_PATH", "./data/placer.db"),
		Server: httpserver.Config{
			ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			SessionSecret:  getEnv("SESSION_SECRET", "dev_secret_change_me"),
			CookieName:     getEnv("SESSION_COOKIE", "placer_session"),
			CookieSecure:   envBool("COOKIE_SECURE", prod),
			SessionTTL:     time.Duration(envInt("SESSION_TTL_DAYS", 1)) * 24 * time.Hour,
			RequestTimeout: envDuration("REQUEST_TIMEOUT", 10*time.Second),
			Settings: session.Settings{
				MaxPool:      envInt("MAX_POOL_LEN", placement.DefaultMaxPool),
				MaxPerLetter: envInt("COMPLETION_MAX_PER_LETTER", placement.DefaultMaxPerLetter),
			},
		},
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
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
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
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
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		return def
	}
	return b
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not a duration, using default")
		return def
	}
	return d
}

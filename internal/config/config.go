// Package config provides runtime configuration values for the auction server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the HTTP server, auth and bidding policy.
type Config struct {
	HTTPAddr       string
	JWTSecret      string
	TokenTTL       time.Duration
	MinIncrement   float64
	MaxIncrement   float64
	SendBufferSize int
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	DemoSeed       bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func floatenv(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from .env (if present) and the environment.
// It returns an error when the bid increment bounds are unusable.
func Load() (Config, error) {
	// .env is optional; real deployments pass env vars directly
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:       getenv("PORT", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       durenvs("TOKEN_TTL_SECONDS", 24*3600),
		MinIncrement:   floatenv("BID_MIN_INCREMENT", 1),
		MaxIncrement:   floatenv("BID_MAX_INCREMENT", 10),
		SendBufferSize: atoienv("WS_SEND_BUFFER", 32),
		PingInterval:   durenvs("WS_PING_INTERVAL_SECONDS", 30),
		WriteTimeout:   durenvs("WS_WRITE_TIMEOUT_SECONDS", 10),
		DemoSeed:       getenv("DEMO_SEED", "") == "true",
	}

	if cfg.HTTPAddr[0] != ':' {
		cfg.HTTPAddr = ":" + cfg.HTTPAddr
	}
	if cfg.MinIncrement <= 0 {
		return Config{}, fmt.Errorf("config: BID_MIN_INCREMENT must be positive, got %v", cfg.MinIncrement)
	}
	if cfg.MaxIncrement < cfg.MinIncrement {
		return Config{}, fmt.Errorf("config: BID_MAX_INCREMENT %v below BID_MIN_INCREMENT %v", cfg.MaxIncrement, cfg.MinIncrement)
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = 32
	}
	return cfg, nil
}

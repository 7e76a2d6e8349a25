package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env             string // local, dev or prod; selects the log handler
	Port            int
	DataDir         string // file-backed round store when DATABASE_URL is unset (see rgs.GetDB)
	RedisURL        string // outcome cache in Redis when set, in memory otherwise
	RedisPassword   string
	RedisDB         int
	OutcomeCacheTTL time.Duration
	AllowOrigin     string
}

func Load() *Config {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	port := 8081
	// Prefer PORT (Render, Fly.io, Railway, etc.) then RGS_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("RGS_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	dataDir := os.Getenv("RGS_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			redisDB = v
		}
	}
	ttl := 10 * time.Minute
	if s := os.Getenv("OUTCOME_CACHE_TTL"); s != "" {
		if v, err := time.ParseDuration(s); err == nil && v > 0 {
			ttl = v
		}
	}
	allowOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &Config{
		Env:             env,
		Port:            port,
		DataDir:         dataDir,
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		OutcomeCacheTTL: ttl,
		AllowOrigin:     allowOrigin,
	}
}

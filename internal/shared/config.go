package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	MongoURI       string
	MongoDB        string
	MongoTimeout   time.Duration
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	CORSOrigins    []string
	RequestTimeout time.Duration
	SeedFile       string
	SeedToken      string
	SeedWorkers    int
	SeedRPS        float64
}

// Load reads the environment. A .env file in the working directory, or the
// files named, is applied first; variables already set are never overridden.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":5000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		MongoURI:       env("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        env("MONGODB_DB", "homeNest"),
		MongoTimeout:   time.Duration(atoi("MONGODB_TIMEOUT_SECONDS", 10)) * time.Second,
		RedisAddr:      redisAddr(),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		CORSOrigins:    list(env("CORS_ORIGINS", "*")),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		SeedFile:       env("SEED_FILE", "seed/properties.json"),
		SeedToken:      env("SEED_TOKEN", ""),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		SeedRPS:        atof("SEED_RPS", 50),
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; dashboard cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// redisAddr distinguishes unset (use the default) from set-but-empty
// (run without a cache).
func redisAddr() string {
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		return v
	}
	return "localhost:6379"
}

func list(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"os"
	"strings"
	"time"
)

// Bench configures cmd/bench. DSN, Redis and migrations come from the same
// variables the server reads, so one .env drives both.
type Bench struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationsDir  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func LoadBench() Bench {
	b := Bench{
		BaseURL:        strings.TrimRight(envOrDefault("GARAGEHUB_BENCH_BASE_URL", "http://localhost:8080"), "/"),
		DSN:            os.Getenv("GARAGEHUB_DB_DSN"),
		RedisAddr:      os.Getenv("GARAGEHUB_REDIS_ADDR"),
		MigrationsDir:  envOrDefault("GARAGEHUB_MIGRATIONS_DIR", "migrations"),
		ApplyMigration: envOrDefaultBool("GARAGEHUB_BENCH_APPLY_MIGRATION", false),
		Strict:         envOrDefaultBool("GARAGEHUB_BENCH_STRICT", false),
		Timeout:        envOrDefaultDuration("GARAGEHUB_BENCH_TIMEOUT", time.Minute),
		Concurrency:    envOrDefaultInt("GARAGEHUB_BENCH_CONCURRENCY", 20),
		Duration:       envOrDefaultDuration("GARAGEHUB_BENCH_DURATION", 10*time.Second),
	}
	if b.Concurrency < 1 {
		b.Concurrency = 1
	}
	return b
}

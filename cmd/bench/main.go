// Command bench drives a running garagehub API end to end and checks the
// database and Redis it writes to. Flags override the GARAGEHUB_* environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"garagehub/internal/config"
)

func main() {
	cfg := config.LoadBench()
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "Postgres DSN; empty skips DB checks")
	flag.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address; empty skips Redis checks")
	flag.StringVar(&cfg.MigrationsDir, "migrations", cfg.MigrationsDir, "goose migrations directory")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", cfg.ApplyMigration, "apply migrations before the DB checks")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat skipped cases as failures")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "budget for the whole run")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "workers for the race and load cases")
	flag.DurationVar(&cfg.Duration, "duration", cfg.Duration, "length of the load case")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	tally := map[string]int{}
	for _, r := range NewRunner(cfg).RunAll(ctx) {
		tally[r.Status]++
	}
	fmt.Printf("\n%s=%d %s=%d %s=%d\n",
		statusPass, tally[statusPass], statusFail, tally[statusFail], statusSkip, tally[statusSkip])

	if tally[statusFail] > 0 || (cfg.Strict && tally[statusSkip] > 0) {
		os.Exit(1)
	}
}

// README: Benchmark cases: environment, schema, HTTP contract, concurrency, and throughput checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"garagehub/internal/config"
	"garagehub/internal/infra"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   config.Bench
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg config.Bench) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	downtown := map[string]float64{"lat": 39.7901, "lng": -89.6440}
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				if err := infra.Migrate(r.db, r.cfg.MigrationsDir); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationsDir)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("tables=%d", len(tables))}
			},
		},

		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}),
		httpCaseMethod("API: metrics exposed", http.MethodGet, base+"/metrics", nil, []int{200}),
		httpCaseMethod("Catalog: list issues", http.MethodGet, base+"/api/issues", nil, []int{200}),
		httpCaseMethod("Catalog: unknown issue -> 404", http.MethodGet, base+"/api/issues/does-not-exist", nil, []int{404}),
		httpCaseMethod("Catalog: nearby shops", http.MethodGet, base+"/api/shops/nearby?lat=39.7901&lng=-89.6440&radius_km=5", nil, []int{200}),

		httpCase("Search: issue search", base+"/api/search", map[string]any{"issue_id": "1"}, []int{200}),
		httpCase("Search: issue search with origin", base+"/api/search", map[string]any{"issue_id": "2", "origin": downtown}, []int{200}),
		httpCase("Search: missing issue -> 400", base+"/api/search", map[string]any{}, []int{400}),
		httpCase("Search: unknown vehicle -> 404", base+"/api/search", map[string]any{"issue_id": "1", "vehicle_id": "nope"}, []int{404}),
		httpCase("Diagnose: configured or 503", base+"/api/search/diagnose", map[string]any{"vehicle_id": "nope", "description": "brakes squeal"}, []int{404, 503}),

		{
			Name: "Concurrency: multi confirm same appointment",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentConfirm(ctx, r)
			},
		},

		{
			Name: "Perf: search throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodPost, base+"/api/search", map[string]any{"issue_id": "2", "origin": downtown})
			},
		},
		{
			Name: "Perf: nearby throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/shops/nearby?lat=39.7901&lng=-89.6440&radius_km=5", nil)
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, _, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			latency := time.Since(start)
			if contains(okStatuses, status) {
				return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	return resp.StatusCode, out, err
}

// create POSTs body and decodes the "id" of the created resource.
func (r *Runner) create(ctx context.Context, path string, body any) (string, error) {
	status, out, err := r.do(ctx, http.MethodPost, r.cfg.BaseURL+path, body)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("POST %s: status=%d body=%s", path, status, out)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(out, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// concurrentConfirm schedules a fresh appointment, then races confirms on
// it. Exactly one may win.
func concurrentConfirm(ctx context.Context, r *Runner) Result {
	run := time.Now().UnixNano()
	mechanic, err := r.create(ctx, "/api/users", map[string]any{
		"name": "Bench Mechanic", "email": fmt.Sprintf("mech-%d@bench.local", run), "role": "mechanic",
	})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	owner, err := r.create(ctx, "/api/users", map[string]any{
		"name": "Bench Owner", "email": fmt.Sprintf("owner-%d@bench.local", run), "role": "vehicle_owner",
	})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	car, err := r.create(ctx, "/api/vehicles", map[string]any{
		"owner_id": owner, "make": "Bench", "model": "Runner", "year": 2020, "fuel_type": "gasoline",
		"license_plate": fmt.Sprintf("B-%d", run), "vin": fmt.Sprintf("VIN%d", run),
	})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	appt, err := r.create(ctx, "/api/appointments", map[string]any{
		"vehicle_id": car, "mechanic_id": mechanic, "owner_id": owner,
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"service_type": "Bench inspection",
	})
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}

	url := r.cfg.BaseURL + "/api/appointments/" + appt + "/confirm"
	wg := sync.WaitGroup{}
	succ, conflicts := 0, 0
	mu := sync.Mutex{}
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, err := r.do(ctx, http.MethodPost, url, map[string]any{"actor_id": mechanic})
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case status >= 200 && status < 300:
				succ++
			case status == http.StatusConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("success=%d conflict=%d", succ, conflicts)
	if succ == 1 {
		return Result{Status: statusPass, Note: note}
	}
	return Result{Status: statusFail, Note: note}
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, err := r.do(ctx, method, url, payload)
				mu.Lock()
				if err != nil || status >= 500 {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+(?:if\s+not\s+exists\s+)?([a-zA-Z0-9_]+)`)

// extractTables lists every table created by the .sql files in dir.
func extractTables(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
			tables = append(tables, m[1])
		}
	}
	return tables, nil
}

// README: Smoke cases for the prompt router, catalog, health endpoints and backing stores, plus load checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"travelbuddy/internal/infra"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string

	// Generate cases count replies that carried the fallback text and
	// 500s caused by the upstream call.
	Fallbacks      int
	UpstreamErrors int
}

const fallbackText = "AI response unavailable."

// generateReply is the /api/generate envelope.
type generateReply struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error"`
}

// tallyGenerate records how a generate call was answered.
func (res *Result) tallyGenerate(status int, payload []byte) {
	if status == http.StatusInternalServerError {
		res.UpstreamErrors++
		return
	}
	var reply generateReply
	if json.Unmarshal(payload, &reply) == nil && reply.Success && reply.Result == fallbackText {
		res.Fallbacks++
	}
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

// check inspects a decoded JSON body; an empty return means it looks right.
type check func(body map[string]any) string

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
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
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "catalog source and readiness",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "GEO index",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "embedded goose migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				if err := infra.Migrate(ctx, r.db); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: places table exists",
			Focus: "catalog schema",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
					"places",
				).Scan(&exists)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if !exists {
					return Result{Status: "FAIL", Note: "missing table: places"}
				}
				return Result{Status: "PASS"}
			},
		},

		httpCaseMethod("Health: live", http.MethodGet, base+"/health", nil, []int{200}, nil, nil),
		httpCaseMethod("Health: ready", http.MethodGet, base+"/ready", nil, []int{200}, []int{503}, nil),

		// Prompt router contract
		httpCaseMethod("Generate: GET -> 405", http.MethodGet, base+"/api/generate", nil, []int{405}, nil,
			expectField("error", "Method not allowed")),
		httpCaseMethod("Generate: PUT -> 405", http.MethodPut, base+"/api/generate", map[string]any{"chat": "hi"}, []int{405}, nil,
			expectField("success", false)),
		httpCase("Generate: empty body -> fallback", base+"/api/generate", nil, []int{200}, nil,
			expectField("result", fallbackText)),
		httpCaseRaw("Generate: invalid JSON -> 400", base+"/api/generate", `{"chat":`, []int{400}, nil,
			expectField("error", "invalid request body")),
		liveCase(r.cfg.Live, httpCase("Generate: chat", base+"/api/generate", map[string]any{
			"chat": "Where can I eat jolada rotti near Koppikar Road?",
		}, []int{200}, []int{500}, expectField("success", true))),
		liveCase(r.cfg.Live, httpCase("Generate: itinerary", base+"/api/generate", map[string]any{
			"days": 2,
		}, []int{200}, []int{500}, expectField("success", true))),

		// Catalog
		httpCaseMethod("Catalog: list", http.MethodGet, base+"/api/places", nil, []int{200}, nil, expectKey("places")),
		httpCaseMethod("Catalog: search", http.MethodGet, base+"/api/places?q=temple", nil, []int{200}, nil, expectKey("places")),
		httpCaseMethod("Catalog: categories", http.MethodGet, base+"/api/places/categories", nil, []int{200}, nil, expectKey("categories")),
		httpCaseMethod("Catalog: category tab", http.MethodGet, base+"/api/places/category/All", nil, []int{200}, nil, expectKey("places")),
		httpCaseMethod("Catalog: detail", http.MethodGet, base+"/api/places/1", nil, []int{200}, []int{404}, expectKey("entry_fee")),
		httpCaseMethod("Catalog: unknown id -> 404", http.MethodGet, base+"/api/places/999999", nil, []int{404}, nil, nil),
		httpCaseMethod("Catalog: invalid id -> 400", http.MethodGet, base+"/api/places/abc", nil, []int{400}, nil, nil),
		httpCaseMethod("Catalog: markers", http.MethodGet, base+"/api/places/markers", nil, []int{200}, nil, expectKey("markers")),
		httpCaseMethod("Catalog: nearby", http.MethodGet, base+"/api/places/nearby?lat=15.3647&lng=75.1239&radius_km=5", nil, []int{200}, nil, expectKey("places")),
		httpCaseMethod("Catalog: nearby bad coords -> 400", http.MethodGet, base+"/api/places/nearby?lat=100&lng=75", nil, []int{400}, nil, nil),
		httpCaseMethod("Maps: route", http.MethodGet, base+"/api/places/1/route?to=2&mode=driving", nil, []int{200}, []int{503, 404}, nil),
		httpCaseMethod("Maps: explore", http.MethodGet, base+"/api/places/1/explore?q=restaurants", nil, []int{200}, []int{503, 404}, nil),

		// Concurrency
		{
			Name:  "Concurrency: parallel empty generate requests",
			Focus: "independent requests, no shared state",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentGenerate(ctx, r, base+"/api/generate")
			},
		},

		// Performance
		{
			Name:  "Perf: catalog list throughput",
			Focus: "read-only snapshot under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodGet, base+"/api/places?q=lake", nil)
			},
		},
		{
			Name:  "Perf: generate fallback throughput",
			Focus: "router overhead without upstream",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, http.MethodPost, base+"/api/generate", map[string]any{})
			},
		},
	}
}

func expectField(key string, want any) check {
	return func(body map[string]any) string {
		got, ok := body[key]
		if !ok {
			return "missing " + key
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return fmt.Sprintf("%s=%v, want %v", key, got, want)
		}
		return ""
	}
}

func expectKey(key string) check {
	return func(body map[string]any) string {
		if _, ok := body[key]; !ok {
			return "missing " + key
		}
		return ""
	}
}

// liveCase skips cases that spend Gemini quota unless -live is set.
func liveCase(live bool, tc TestCase) TestCase {
	if live {
		return tc
	}
	return manualCase(tc.Name, "live=false")
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int, chk check) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses, chk)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int, chk check) TestCase {
	var raw string
	if body != nil {
		b, _ := json.Marshal(body)
		raw = string(b)
	}
	return httpCaseRawMethod(name, method, url, raw, okStatuses, pendingStatuses, chk)
}

func httpCaseRaw(name, url, raw string, okStatuses, pendingStatuses []int, chk check) TestCase {
	return httpCaseRawMethod(name, http.MethodPost, url, raw, okStatuses, pendingStatuses, chk)
}

func httpCaseRawMethod(name, method, url, raw string, okStatuses, pendingStatuses []int, chk check) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if raw != "" {
				reader = strings.NewReader(raw)
			}
			req, _ := http.NewRequestWithContext(ctx, method, url, reader)
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			payload, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			res := Result{Latency: time.Since(start), Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			if method == http.MethodPost && strings.HasSuffix(url, "/api/generate") {
				res.tallyGenerate(resp.StatusCode, payload)
			}

			switch {
			case contains(okStatuses, resp.StatusCode):
				res.Status = "PASS"
				if chk != nil {
					var decoded map[string]any
					if err := json.Unmarshal(payload, &decoded); err != nil {
						res.Status, res.Note = "FAIL", res.Note+" body: "+err.Error()
					} else if msg := chk(decoded); msg != "" {
						res.Status, res.Note = "FAIL", res.Note+" "+msg
					}
				}
			case contains(pendingStatuses, resp.StatusCode):
				res.Status = "PENDING"
			default:
				res.Status = "FAIL"
			}
			return res
		},
	}
}

func manualCase(name, note string) TestCase {
	return TestCase{
		Name:  name,
		Focus: "Manual",
		Run: func(ctx context.Context, r *Runner) Result {
			return Result{Status: "SKIP", Note: note}
		},
	}
}

func concurrentGenerate(ctx context.Context, r *Runner, url string) Result {
	wg := sync.WaitGroup{}
	succ := 0
	mu := sync.Mutex{}
	var tally Result

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := r.httpc.Do(req)
			if err != nil {
				return
			}
			payload, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			var body generateReply
			_ = json.Unmarshal(payload, &body)

			mu.Lock()
			defer mu.Unlock()
			tally.tallyGenerate(resp.StatusCode, payload)
			if resp.StatusCode == http.StatusOK && body.Success && body.Result != "" {
				succ++
			}
		}()
	}
	wg.Wait()

	tally.Status = "PASS"
	tally.Note = fmt.Sprintf("success=%d fallback=%d", succ, tally.Fallbacks)
	if succ != r.cfg.Concurrency {
		tally.Status = "FAIL"
		tally.Note = fmt.Sprintf("success=%d/%d fallback=%d", succ, r.cfg.Concurrency, tally.Fallbacks)
	}
	return tally
}

func perfLoad(ctx context.Context, r *Runner, method, url string, payload any) Result {
	var raw []byte
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				var body io.Reader
				if raw != nil {
					body = strings.NewReader(string(raw))
				}
				req, _ := http.NewRequestWithContext(ctx, method, url, body)
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

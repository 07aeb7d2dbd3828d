// README: Entry point for the smoke/load runner; parses flags, runs every case and prints a per-group tally.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)
	sum := summarize(results)
	sum.Write(os.Stdout)
	os.Exit(sum.exitCode(cfg.Strict))
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	ApplyMigration bool
	Live           bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envString("TRAVELBUDDY_BENCH_BASE_URL", "http://localhost:5000"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("TRAVELBUDDY_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("TRAVELBUDDY_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envBool("TRAVELBUDDY_BENCH_APPLY_MIGRATION"), "apply embedded migrations before DB checks")
	flag.BoolVar(&cfg.Live, "live", envBool("TRAVELBUDDY_BENCH_LIVE"), "send chat/itinerary requests that reach Gemini")
	flag.BoolVar(&cfg.Strict, "strict", envBool("TRAVELBUDDY_BENCH_STRICT"), "treat PENDING as failure")
	flag.DurationVar(&cfg.Timeout, "timeout", envDuration("TRAVELBUDDY_BENCH_TIMEOUT", 2*time.Minute), "total run timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envPositiveInt("TRAVELBUDDY_BENCH_CONCURRENCY", 20), "workers for load cases")
	flag.DurationVar(&cfg.Duration, "duration", envDuration("TRAVELBUDDY_BENCH_DURATION", 10*time.Second), "length of each load case")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

// summary tallies results per case group ("Generate", "Catalog", ...) and
// counts how generate calls were answered.
type summary struct {
	byGroup map[string]map[string]int
	total   map[string]int

	fallbacks      int
	upstreamErrors int
}

func summarize(results []Result) summary {
	s := summary{byGroup: map[string]map[string]int{}, total: map[string]int{}}
	for _, r := range results {
		group, _, found := strings.Cut(r.Name, ":")
		if !found {
			group = "Other"
		}
		if s.byGroup[group] == nil {
			s.byGroup[group] = map[string]int{}
		}
		s.byGroup[group][r.Status]++
		s.total[r.Status]++
		s.fallbacks += r.Fallbacks
		s.upstreamErrors += r.UpstreamErrors
	}
	return s
}

func (s summary) Write(w io.Writer) {
	fmt.Fprintln(w, "\n== Summary ==")
	groups := make([]string, 0, len(s.byGroup))
	for g := range s.byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		c := s.byGroup[g]
		fmt.Fprintf(w, "%-12s PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", g, c["PASS"], c["FAIL"], c["PENDING"], c["SKIP"])
	}
	fmt.Fprintf(w, "%-12s PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", "Total",
		s.total["PASS"], s.total["FAIL"], s.total["PENDING"], s.total["SKIP"])
	fmt.Fprintf(w, "generate: fallback replies=%d upstream errors=%d\n", s.fallbacks, s.upstreamErrors)
}

func (s summary) exitCode(strict bool) int {
	if s.total["FAIL"] > 0 || (strict && s.total["PENDING"] > 0) {
		return 1
	}
	return 0
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func envPositiveInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

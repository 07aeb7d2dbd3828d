// README: Config loader with env defaults for HTTP, Gemini, catalog, Postgres, Redis and Maps settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"travelbuddy/internal/ai"
)

// Gemini transports.
const (
	TransportSDK  = ai.TransportSDK
	TransportREST = ai.TransportREST
)

// Catalog sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type AIConfig struct {
	GeminiKey       string
	Transport       string
	BaseURL         string
	ChatModel       string
	PlannerModel    string
	GenerateTimeout time.Duration
}

type CatalogConfig struct {
	Source       string
	File         string
	Seed         bool
	MapCenterLat float64
	MapCenterLng float64
	MapZoom      int
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	City struct {
		Name   string
		Region string
	}
	AI      AIConfig
	Catalog CatalogConfig
	DB      struct {
		DSN     string
		Migrate bool
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set are not overridden.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRAVELBUDDY_HTTP_ADDR", ":5000")
	cfg.HTTP.CORSOrigins = envList("TRAVELBUDDY_CORS_ORIGINS")

	cfg.City.Name = envOrDefault("TRAVELBUDDY_CITY", "Hubli")
	cfg.City.Region = envOrDefault("TRAVELBUDDY_REGION", "Karnataka")

	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Transport = strings.ToLower(envOrDefault("TRAVELBUDDY_GEMINI_TRANSPORT", TransportREST))
	cfg.AI.BaseURL = envOrDefault("TRAVELBUDDY_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	cfg.AI.ChatModel = envOrDefault("TRAVELBUDDY_CHAT_MODEL", "gemini-2.0-flash")
	cfg.AI.PlannerModel = envOrDefault("TRAVELBUDDY_PLANNER_MODEL", "gemini-2.0-pro")
	cfg.AI.GenerateTimeout = envOrDefaultDuration("TRAVELBUDDY_GENERATE_TIMEOUT", 0)

	cfg.Catalog.Source = strings.ToLower(envOrDefault("TRAVELBUDDY_CATALOG_SOURCE", SourceFile))
	cfg.Catalog.File = envOrDefault("TRAVELBUDDY_CATALOG_FILE", "data/places.json")
	cfg.Catalog.Seed = envOrDefaultBool("TRAVELBUDDY_CATALOG_SEED", false)
	cfg.Catalog.MapCenterLat = envOrDefaultFloat("TRAVELBUDDY_MAP_CENTER_LAT", 15.3647)
	cfg.Catalog.MapCenterLng = envOrDefaultFloat("TRAVELBUDDY_MAP_CENTER_LNG", 75.1239)
	cfg.Catalog.MapZoom = envOrDefaultInt("TRAVELBUDDY_MAP_ZOOM", 12)

	cfg.DB.DSN = os.Getenv("TRAVELBUDDY_DB_DSN")
	cfg.DB.Migrate = envOrDefaultBool("TRAVELBUDDY_DB_MIGRATE", true)
	cfg.Redis.Addr = os.Getenv("TRAVELBUDDY_REDIS_ADDR")
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.AI.GeminiKey == "" {
		errs = append(errs, errors.New("environment variable GEMINI_API_KEY is required"))
	}
	if c.AI.Transport != TransportSDK && c.AI.Transport != TransportREST {
		errs = append(errs, errors.New("TRAVELBUDDY_GEMINI_TRANSPORT must be sdk or rest"))
	}
	switch c.Catalog.Source {
	case SourceFile:
	case SourcePostgres:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("TRAVELBUDDY_CATALOG_SOURCE=postgres requires TRAVELBUDDY_DB_DSN"))
		}
	default:
		errs = append(errs, errors.New("TRAVELBUDDY_CATALOG_SOURCE must be file or postgres"))
	}
	if c.AI.GenerateTimeout < 0 {
		errs = append(errs, errors.New("TRAVELBUDDY_GENERATE_TIMEOUT must not be negative"))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envOrDefaultDuration accepts Go durations ("30s") or bare seconds ("30").
func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// README: Entry point; loads config, wires services, starts the HTTP server and shuts it down on signal.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"travelbuddy/internal/ai"
	"travelbuddy/internal/config"
	httptransport "travelbuddy/internal/http"
	"travelbuddy/internal/infra"
	"travelbuddy/internal/maps"
	"travelbuddy/internal/modules/catalog"
	"travelbuddy/internal/modules/generation"
	"travelbuddy/internal/modules/health"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.New(ctx, cfg.AI.Transport, cfg.AI.GeminiKey, cfg.AI.BaseURL)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	router := generation.NewRouter(cfg.City.Name, cfg.City.Region, generation.Models{
		Chat:    cfg.AI.ChatModel,
		Planner: cfg.AI.PlannerModel,
	})
	generationSvc := generation.NewService(provider, router, cfg.AI.GenerateTimeout)

	var checkers []health.Checker

	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		if cfg.DB.Migrate {
			if err := infra.Migrate(ctx, dbPool); err != nil {
				log.Fatal(err)
			}
		}
		checkers = append(checkers, health.NewPostgresChecker(dbPool))
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		checkers = append(checkers, health.NewRedisChecker(redisClient))
	}

	snap := loadCatalog(ctx, cfg, dbPool)
	log.Printf("catalog: %d places loaded from %s", snap.Len(), cfg.Catalog.Source)

	opts := catalog.Options{
		Center: catalog.LatLng{Lat: cfg.Catalog.MapCenterLat, Lng: cfg.Catalog.MapCenterLng},
		Zoom:   cfg.Catalog.MapZoom,
	}
	if redisClient != nil {
		index := catalog.NewGeoIndex(redisClient)
		if err := index.Index(ctx, snap); err != nil {
			log.Printf("catalog: geo index disabled: %v", err)
		} else {
			opts.Index = index
		}
	}
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
		opts.Routes = routeSvc
		opts.Places = placesSvc
	} else {
		log.Printf("maps: GOOGLE_MAPS_API_KEY not set; route and explore endpoints disabled")
	}
	catalogSvc := catalog.NewService(snap, opts)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Generation:  generationSvc,
		Catalog:     catalogSvc,
		Health:      health.NewService(checkers...),
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (gemini transport %s)", cfg.HTTP.Addr, cfg.AI.Transport)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("server stopped")
}

// loadCatalog reads the place collection once. Failures are logged and the
// service starts with an empty catalog.
func loadCatalog(ctx context.Context, cfg config.Config, db *pgxpool.Pool) *catalog.Snapshot {
	file := catalog.FileSource{Path: cfg.Catalog.File}

	if cfg.Catalog.Source != config.SourcePostgres {
		snap, err := catalog.Load(ctx, file)
		if err != nil {
			log.Printf("catalog: %v", err)
			return catalog.NewSnapshot(nil)
		}
		return snap
	}

	store := catalog.NewStore(db)
	if cfg.Catalog.Seed {
		places, err := file.Places(ctx)
		if err != nil {
			log.Printf("catalog seed: %v", err)
		} else if err := store.Upsert(ctx, places); err != nil {
			log.Printf("catalog seed: %v", err)
		} else {
			log.Printf("catalog seed: upserted %d places", len(places))
		}
	}
	snap, err := catalog.Load(ctx, store)
	if err != nil {
		log.Printf("catalog: %v", err)
		return catalog.NewSnapshot(nil)
	}
	return snap
}

// Command atlasfitd is the Atlas Fit platform service.
// It serves the platform webhook endpoint, the scoring REST API,
// and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/atlascommand/atlasfit/internal/api"
	"github.com/atlascommand/atlasfit/internal/availability"
	"github.com/atlascommand/atlasfit/internal/dispatch"
	"github.com/atlascommand/atlasfit/internal/platform"
	"github.com/atlascommand/atlasfit/internal/roster"
	"github.com/atlascommand/atlasfit/internal/webhook"
	"github.com/atlascommand/atlasfit/pkg/config"
)

// loadConfig merges a discovered config file with environment overrides.
// Environment variables win so container deployments need no config file.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()
	if cwd, err := os.Getwd(); err == nil {
		if path := config.FindConfigFile(cwd); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				log.Printf("warning: failed to load config %s: %v", path, err)
			} else {
				cfg = loaded
			}
		}
	}

	s := &cfg.Service
	s.Addr = envOrDefault("ADDR", s.Addr)
	s.DatabaseURL = envOrDefault("DATABASE_URL", s.DatabaseURL)
	s.RedisAddr = envOrDefault("REDIS_ADDR", s.RedisAddr)
	s.StorageBackend = envOrDefault("STORAGE_BACKEND", s.StorageBackend)
	s.StoragePath = envOrDefault("LOCAL_STORAGE_PATH", s.StoragePath)
	s.Bucket = envOrDefault("STORAGE_BUCKET", s.Bucket)
	s.APIKey = envOrDefault("API_KEY", s.APIKey)
	s.WebhookSecret = envOrDefault("WEBHOOK_SECRET", s.WebhookSecret)
	return cfg
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Service.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Service.RedisAddr})
	defer rdb.Close()

	// Initialize services
	rosterSvc := roster.NewService(db)
	avail := availability.NewStore(rdb, 0)

	storage, err := buildStorage(ctx, cfg.Service)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	engine := cfg.Engine()
	orgID := envOrDefault("ATLAS_ORG_ID", "default")

	dispatcher := dispatch.NewService(rosterSvc, storage, engine, avail, orgID)
	webhookHandler := webhook.NewHandler([]byte(cfg.Service.WebhookSecret), rosterSvc, dispatcher, avail)
	apiHandler := api.NewHandler(rosterSvc, dispatcher, storage, engine, nil, orgID)

	// Set up HTTP routes. The REST API sits behind the API key; the
	// webhook endpoint authenticates with its HMAC signature instead.
	apiMux := http.NewServeMux()
	apiHandler.RegisterRoutes(apiMux)
	protected := api.APIKeyAuth(cfg.Service.APIKey)(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", protected)
	mux.Handle("POST /v1/webhooks/atlas", webhookHandler)
	mux.HandleFunc("GET /healthz", healthHandler(db, rdb))

	srv := &http.Server{
		Addr:    cfg.Service.Addr,
		Handler: api.CORS(mux),
	}

	// Graceful shutdown
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting atlasfitd on %s", cfg.Service.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-runCtx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// buildStorage selects the blob storage backend from configuration.
func buildStorage(ctx context.Context, s config.ServiceConfig) (dispatch.StorageClient, error) {
	switch s.StorageBackend {
	case "s3":
		return dispatch.NewS3Storage(ctx, dispatch.S3Config{
			Bucket:    s.Bucket,
			Region:    os.Getenv("AWS_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
	case "gcs":
		return dispatch.NewGCSStorage(ctx, s.Bucket)
	default:
		return dispatch.NewLocalStorage(s.StoragePath), nil
	}
}

func healthHandler(db *sql.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// gigboard marketplace-service
//
// Freelance-job marketplace REST API: job postings, job discussion (comments
// and threaded replies) and user accounts over PostgreSQL, with a Redis-backed
// listing cache and mutation events published for SSE consumers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"gigboard/marketplace-service/internal/auth"
	"gigboard/marketplace-service/internal/cache"
	"gigboard/marketplace-service/internal/config"
	"gigboard/marketplace-service/internal/db"
	"gigboard/marketplace-service/internal/discussion"
	"gigboard/marketplace-service/internal/job"
	"gigboard/marketplace-service/internal/scheduler"
	"gigboard/marketplace-service/internal/user"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[marketplace] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[marketplace] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[marketplace] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[marketplace] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[marketplace] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[marketplace] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[marketplace] Redis connected ✓")

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := auth.New(cfg.JWTSecret)
	listings := cache.NewListings(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	users := user.NewService(pool)
	jobs := job.NewService(pool, rdb, listings)
	discussions := discussion.NewService(pool, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	userHandler := user.NewHandler(users, tokens)
	userHandler.RegisterPublicRoutes(r)

	api := r.NewRoute().Subrouter()
	api.Use(tokens.Middleware)
	userHandler.RegisterProtectedRoutes(api)
	job.NewHandler(jobs).RegisterRoutes(api)
	discussion.NewHandler(discussions).RegisterRoutes(api)

	// ── Cache warm scheduler ─────────────────────────────────────────────────
	sched := scheduler.New(jobs, cfg.WarmIntervalMins)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[marketplace] Scheduler: %v", err)
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[marketplace] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[marketplace] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[marketplace] Shutting down…")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[marketplace] Shutdown error: %v", err)
	}
	log.Println("[marketplace] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "marketplace-service",
		"version": version,
	})
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mediassist/clinical-service/internal/assistant"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/db"
	"github.com/mediassist/clinical-service/internal/genai"
	internalhttp "github.com/mediassist/clinical-service/internal/http"
	"github.com/mediassist/clinical-service/internal/messaging"
	"github.com/mediassist/clinical-service/internal/records"
	"github.com/mediassist/clinical-service/internal/store"
	"github.com/mediassist/clinical-service/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// OpenTelemetry, degrades gracefully when no collector is reachable
	otelProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}

	var metrics *telemetry.Metrics
	if otelProvider != nil {
		metrics, err = telemetry.InitMetrics()
		if err != nil {
			log.Printf("Warning: metrics initialization failed: %v", err)
		}
	}

	// Embedded key-value store, the primary persistence layer
	storePath := os.Getenv("STORE_PATH")
	if storePath == "" {
		storePath = "data/clinical.db"
	}
	backend, err := store.OpenBolt(storePath)
	if err != nil {
		log.Fatalf("failed to open store at %s: %v", storePath, err)
	}
	defer backend.Close()
	st := store.New(backend)
	log.Printf("✓ Store opened at %s", storePath)

	// Optional relational store for auxiliary records
	database, err := db.Connect()
	if err != nil {
		log.Printf("Warning: relational store unavailable: %v", err)
		log.Println("Service will continue without auxiliary records")
		database = nil
	} else {
		defer database.Close()
		if err := records.NewRepository(database).EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to ensure records schema: %v", err)
		}
	}

	// Optional event publisher
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: event publisher unavailable: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	verifier := auth.NewVerifier(auth.LoadConfig())

	permsPath := os.Getenv("PERMISSIONS_PATH")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("failed to load permissions from %s: %v", permsPath, err)
	}
	log.Printf("✓ Permissions loaded for %d roles", len(perms))

	// Generation client and fallback runner
	client := genai.NewClientFromEnv()
	if !client.Configured() {
		log.Println("Warning: GENAI_API_KEY not set, assistant endpoints will answer with a configuration notice")
	}
	runner := assistant.NewRunner(client)
	if raw := os.Getenv("ASSISTANT_MODELS"); raw != "" {
		var models []string
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			runner = runner.WithModels(models)
		}
	}
	if metrics != nil {
		runner = runner.WithMetrics(metrics)
	}

	router := internalhttp.SetupRouter(internalhttp.Dependencies{
		Store:     st,
		DB:        database,
		Verifier:  verifier,
		Perms:     perms,
		Runner:    runner,
		Publisher: publisher,
		Metrics:   metrics,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      internalhttp.CORSMiddleware(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("clinical-service starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if otelProvider != nil {
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during telemetry shutdown: %v", err)
		}
	}
	log.Println("✓ Shutdown complete")
}

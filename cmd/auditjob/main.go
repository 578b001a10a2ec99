package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mediassist/clinical-service/internal/audit"
	"github.com/mediassist/clinical-service/internal/store"
)

func main() {
	keep := flag.Int("keep", audit.MaxEntries, "number of newest entries to keep in the live trail")
	outDir := flag.String("out", "archives", "directory for archived trail exports")
	flag.Parse()

	log.Println("Audit Archive Job - Starting")

	storePath := os.Getenv("STORE_PATH")
	if storePath == "" {
		storePath = "data/clinical.db"
	}

	backend, err := store.OpenBolt(storePath)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", storePath, err)
	}
	defer backend.Close()

	service := audit.NewService(audit.NewRepository(store.New(backend)))

	trail := service.Trail()
	log.Printf("Trail currently holds %d entries", len(trail))

	// Archive the full trail before trimming anything
	export, err := service.ExportJSON()
	if err != nil {
		log.Fatalf("Failed to export trail: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create archive directory: %v", err)
	}
	archivePath := filepath.Join(*outDir, fmt.Sprintf("journal-audit-%s.json", time.Now().Format("2006-01-02-150405")))
	if err := os.WriteFile(archivePath, export, 0o644); err != nil {
		log.Fatalf("Failed to write archive: %v", err)
	}
	log.Printf("✓ Trail archived to %s", archivePath)

	dropped, err := service.Trim(*keep)
	if err != nil {
		log.Fatalf("Trim failed: %v", err)
	}
	if len(dropped) == 0 {
		log.Println("No trimming needed. Exiting.")
		return
	}

	// Keep a separate record of exactly what was dropped
	droppedJSON, err := json.MarshalIndent(dropped, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal dropped entries: %v", err)
	}
	droppedPath := filepath.Join(*outDir, fmt.Sprintf("journal-audit-purge-%s.json", time.Now().Format("2006-01-02-150405")))
	if err := os.WriteFile(droppedPath, droppedJSON, 0o644); err != nil {
		log.Fatalf("Failed to write dropped entries: %v", err)
	}

	log.Printf("✓ Archive completed: %d entries trimmed, %d kept", len(dropped), *keep)
	log.Println("Audit Archive Job - Finished")
}

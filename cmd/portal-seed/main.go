package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/noah-isme/campus-portal-api/internal/repository"
	"github.com/noah-isme/campus-portal-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	file := flag.String("file", cfg.DocStore.SeedFile, "path to the JSON fixture (collection -> id -> document)")
	driver := flag.String("driver", cfg.DocStore.Driver, "document store driver: postgres or mongo")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if *file == "" {
		log.Fatal("seed file is required (-file or DOCSTORE_SEED_FILE)")
	}
	cfg.DocStore.Driver = *driver
	if cfg.DocStore.Driver == config.DocStoreMemory {
		log.Fatal("memory driver does not persist; use -driver postgres or -driver mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backend, err := repository.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open document store: %v", err)
	}
	defer backend.Close(context.Background()) //nolint:errcheck

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open seed file: %v", err)
	}
	defer f.Close()

	fixture, err := repository.ReadFixture(f)
	if err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	count, err := repository.LoadFixture(ctx, backend.Store, fixture)
	if err != nil {
		log.Fatalf("seed failed after %d documents: %v", count, err)
	}
	log.Printf("seeded %d documents into %s", count, backend.Driver)
}

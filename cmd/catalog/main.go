package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skillgap/internal/app"
	"skillgap/internal/catalog"
	"skillgap/internal/config"
	"skillgap/internal/database/seeder"

	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "kaggle_courses.json", "course export with a top-level courses array")
	modeFlag := flag.String("mode", "replace", "replace wipes the catalog first, upsert merges by url")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	mode, err := catalog.ParseMode(*modeFlag)
	if err != nil {
		log.Fatalf("invalid -mode: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewDatabaseContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if err := app.Migrate(cfg, c.DB, log.Default()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	runner := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.CatalogSeeder{
			Path:      *file,
			Mode:      mode,
			BatchSize: cfg.Catalog.BatchSize,
			Logger:    log.Default(),
			OnDone: func(s catalog.Stats) {
				log.Printf("catalog import done mode=%s inserted=%d updated=%d skipped=%d total=%d",
					mode, s.Inserted, s.Updated, s.Skipped, s.Total)
			},
		},
	}}
	if err := runner.Run(ctx, c.DB); err != nil {
		log.Fatalf("catalog import failed: %v", err)
	}
}

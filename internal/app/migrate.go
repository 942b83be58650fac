package app

import (
	"context"
	"log"
	"os"
	"time"

	"skillgap/internal/config"
	"skillgap/internal/database"
	"skillgap/internal/database/migration"
	"skillgap/migrations"
)

// Migrate applies pending migrations. A MIGRATIONS_DIR present on disk wins
// over the files embedded in the binary.
func Migrate(cfg config.Config, db database.DB, logger *log.Logger) error {
	r := migration.Runner{FS: migrations.FS, Logger: logger}
	if dir := cfg.App.MigrationsDir; dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			r = migration.Runner{Dir: dir, Logger: logger}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return r.Run(ctx, db.SQLDB())
}

package seeder

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"skillgap/internal/catalog"
	"skillgap/internal/database"
	"skillgap/internal/repository"
)

// CatalogSeeder imports a {"courses": [...]} export file into the courses
// table.
type CatalogSeeder struct {
	Path      string
	Mode      catalog.Mode
	BatchSize int
	Logger    *log.Logger
	// OnDone receives the import stats after a successful run.
	OnDone func(catalog.Stats)
}

func (CatalogSeeder) Name() string { return "catalog" }

func (s CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return fmt.Errorf("empty catalog path")
	}
	if err := EnsureTableColumns(ctx, db, "courses", "url", "course_name", "provider", "skills", "rating"); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	mode := s.Mode
	if mode == "" {
		mode = catalog.ModeReplace
	}

	importer := catalog.NewImporter(repository.NewPostgresCourseRepository(db), s.BatchSize, s.Logger)
	stats, err := importer.Import(ctx, data, mode)
	if err != nil {
		return err
	}
	if s.OnDone != nil {
		s.OnDone(stats)
	}
	return nil
}

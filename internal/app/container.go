package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillgap/internal/catalog"
	"skillgap/internal/config"
	"skillgap/internal/database"
	dbpostgres "skillgap/internal/database/postgres"
	"skillgap/internal/delivery/http/handler"
	"skillgap/internal/delivery/http/middleware"
	v1 "skillgap/internal/delivery/http/routes/v1"
	"skillgap/internal/infrastructure/cache"
	"skillgap/internal/infrastructure/persistence/postgres"
	"skillgap/internal/nlp"
	"skillgap/internal/normalize"
	"skillgap/internal/pkg/jwt"
	"skillgap/internal/recommend"
	"skillgap/internal/repository"
	"skillgap/internal/scraper"
	"skillgap/internal/taxonomy"
	"skillgap/internal/usecase"
)

const pageFetchTimeout = 15 * time.Second

type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis

	users *postgres.UserRepository

	AuthMiddleware *middleware.AuthMiddleware
	Health         *handler.HealthHandler
	Handlers       v1.Handlers
}

// NewContainer connects to Postgres and Redis and wires every usecase and
// handler. Redis is optional: an unreachable server disables caching.
func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	if err := c.wire(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewDatabaseContainer only opens the database. CLIs that do not serve HTTP
// use it.
func NewDatabaseContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return &Container{Config: cfg, Logger: log.Default(), DB: db}, nil
}

func (c *Container) wire() error {
	cfg := c.Config

	c.Cache = cache.NewRedis(cfg.Redis, c.Logger)

	users, err := postgres.NewUserRepository(c.DB)
	if err != nil {
		return fmt.Errorf("prepare user statements: %w", err)
	}
	c.users = users

	cvRepo := repository.NewPostgresCVEntityRepository(c.DB)
	jdRepo := repository.NewPostgresJDEntityRepository(c.DB)
	snapshots := repository.NewPostgresGapSnapshotRepository(c.DB)
	normalisedRepo := repository.NewPostgresNormalisedEntityRepository(c.DB)
	courses := repository.NewPostgresCourseRepository(c.DB)

	static, err := recommend.DefaultStaticCatalog()
	if err != nil {
		return fmt.Errorf("load static catalog: %w", err)
	}

	esco := taxonomy.NewESCOClient(taxonomy.Options{
		BaseURL: cfg.Taxonomy.BaseURL,
		Timeout: cfg.Taxonomy.Timeout,
		RPS:     cfg.Taxonomy.RPS,
		Logger:  c.Logger,
	})

	jwtSvc := jwt.NewFromConfig(cfg.JWT)
	extractor := nlp.NewExtractor(nlp.DefaultVocabulary())

	authUC := usecase.NewAuthUsecase(users, jwtSvc)
	userUC := usecase.NewUserUsecase(users)
	docUC := usecase.NewDocumentUsecase(extractor)
	entityUC := usecase.NewEntityUsecase(docUC, extractor, users, cvRepo, jdRepo, scraper.NewPageFetcher(pageFetchTimeout), c.Logger)
	gapUC := usecase.NewGapUsecase(users, cvRepo, jdRepo, snapshots, c.Logger)
	normaliseUC := usecase.NewNormaliseUsecase(users, cvRepo, jdRepo, normalisedRepo, normalize.NewDefault(esco), c.Logger)
	catalogUC := usecase.NewCatalogUsecase(
		catalog.NewImporter(courses, cfg.Catalog.BatchSize, c.Logger),
		courses, c.Cache, cfg.Redis.TTL, c.Logger,
	)
	recommendUC := usecase.NewRecommendationUsecase(
		snapshots, jdRepo,
		[]recommend.Source{recommend.NewCatalogSource(courses), static},
		cfg.Catalog.RecommenderSource,
		c.Cache, cfg.Redis.TTL, c.Logger,
	)

	maxBytes := cfg.Upload.MaxBytes
	c.AuthMiddleware = middleware.NewAuthMiddleware(jwtSvc)
	c.Health = handler.NewHealthHandler(c.DB)
	c.Handlers = v1.Handlers{
		Auth:           handler.NewAuthHandler(authUC),
		User:           handler.NewUserHandler(userUC),
		Document:       handler.NewDocumentHandler(docUC, maxBytes),
		Entity:         handler.NewEntityHandler(entityUC, maxBytes),
		Gap:            handler.NewGapHandler(gapUC),
		Normalise:      handler.NewNormaliseHandler(normaliseUC),
		Catalog:        handler.NewCatalogHandler(catalogUC, maxBytes),
		Recommendation: handler.NewRecommendationHandler(recommendUC),
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.users != nil {
		_ = c.users.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

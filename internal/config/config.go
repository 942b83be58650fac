package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Taxonomy TaxonomyConfig
	Catalog  CatalogConfig
	Upload   UploadConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type TaxonomyConfig struct {
	BaseURL string
	Timeout time.Duration
	RPS     float64
}

type CatalogConfig struct {
	BatchSize         int
	RecommenderSource string
}

type UploadConfig struct {
	MaxBytes int64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")
var errInvalidEnv = errors.New("invalid environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
		invalid = append(invalid, key)
		return def
	}
	num := func(key string, def int64) int64 {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: optDefault("MIGRATIONS_DIR", "migrations"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout: dur("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:   int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(num("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      dur("REDIS_TTL", 600*time.Second),
	}

	rps := 5.0
	if v := opt("ESCO_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			invalid = append(invalid, "ESCO_RPS")
		} else {
			rps = f
		}
	}
	cfg.Taxonomy = TaxonomyConfig{
		BaseURL: optDefault("ESCO_BASE_URL", "https://ec.europa.eu/esco/api"),
		Timeout: dur("ESCO_TIMEOUT", 10*time.Second),
		RPS:     rps,
	}

	source := strings.ToLower(optDefault("RECOMMENDER_SOURCE", "catalog"))
	if source != "catalog" && source != "static" {
		invalid = append(invalid, "RECOMMENDER_SOURCE")
	}
	cfg.Catalog = CatalogConfig{
		BatchSize:         int(num("CATALOG_BATCH_SIZE", 1000)),
		RecommenderSource: source,
	}

	cfg.Upload = UploadConfig{
		MaxBytes: num("UPLOAD_MAX_BYTES", 10<<20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

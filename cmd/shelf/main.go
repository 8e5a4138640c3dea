package main

import (
	"context"
	"database/sql"
	"expvar"
	"flag"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/emzola/shelf/clients"
	"github.com/emzola/shelf/config"
	"github.com/emzola/shelf/data"
	"github.com/emzola/shelf/handler"
	"github.com/emzola/shelf/internal/jsonlog"
	"github.com/emzola/shelf/repository"
	"github.com/emzola/shelf/repository/postgres"
	"github.com/emzola/shelf/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/joho/godotenv"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	wg      *sync.WaitGroup
	cache   *ttlcache.Cache[string, data.BookDetails]
	storage string
	service service.Service
	handler *handler.Handler
}

// @title  Shelf API
// @version 1.0.0
// @description A personal bookshelf with marketplace metadata lookups.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	// A missing .env file is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.PrintError(err, nil)
	}

	// Initialize configuration
	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	level, err := jsonlog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	logger = jsonlog.New(os.Stdout, level)

	// Initialize storage: PostgreSQL when a DSN is configured, memory otherwise
	var repo repository.Repository
	storage := "memory"
	if cfg.Database.DSN != "" {
		storage = "postgres"
		db, err := postgres.OpenDBConn(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()
		err = postgres.Migrate(db)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		logger.PrintInfo("database connection pool established", nil)
		publishDBStats(db)
		repo = repository.New(db)
	} else {
		logger.PrintInfo("using in-memory book storage", nil)
		repo = repository.NewMemory()
	}

	// Optional collaborators: product lookups and cover storage
	cache := ttlcache.New(ttlcache.WithTTL[string, data.BookDetails](cfg.Provider.CacheTTL))
	go cache.Start()
	deps := service.Deps{Cache: cache}
	if cfg.ProviderEnabled() {
		deps.Provider = clients.NewProductClient(cfg, clients.NewHTTPClient(cfg.Provider.Timeout))
		logger.PrintInfo("product lookups enabled", map[string]string{"host": cfg.Provider.Host})
	} else {
		logger.PrintInfo("product lookups disabled, serving placeholder details", nil)
	}
	if cfg.CoverStorageEnabled() {
		s3Client, err := clients.NewS3Client(context.Background(), cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		deps.Covers = clients.NewCoverBucket(s3Client, cfg.S3.Bucket, cfg.S3.Region)
		logger.PrintInfo("cover uploads enabled", map[string]string{"bucket": cfg.S3.Bucket})
	}

	// Publish application metrics alongside the request counters
	expvar.NewString("version").Set(handler.Version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	var wg sync.WaitGroup

	// Application layers
	service := service.New(cfg, &wg, logger, repo, deps)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		logger:  logger,
		wg:      &wg,
		cache:   cache,
		storage: storage,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func publishDBStats(db *sql.DB) {
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
}

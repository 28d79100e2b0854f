// Package server initializes and runs the application: it opens the
// metadata store, runs migrations, connects the session store and job
// queues, selects the content volume, and starts the HTTP server with
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dborovskis/filevault/internal/logging"
	"github.com/dborovskis/filevault/internal/server/auth"
	"github.com/dborovskis/filevault/internal/server/config"
	hs "github.com/dborovskis/filevault/internal/server/http"
	"github.com/dborovskis/filevault/internal/server/queue"
	"github.com/dborovskis/filevault/internal/server/repositories/repomanager"
	"github.com/dborovskis/filevault/internal/server/services"
	"github.com/dborovskis/filevault/internal/server/sessions"
	"github.com/dborovskis/filevault/internal/server/storage"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	store       sessions.Store
	userService *services.UserService
	fileService *services.FileService
	resolver    *auth.Resolver
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	store := sessions.NewRedisStore(rdb)

	volume, err := newVolume(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("volume init error: %w", err)
	}

	fileQueue := queue.NewRedisProducer(rdb, cfg.FileQueue)
	userQueue := queue.NewRedisProducer(rdb, cfg.UserQueue)

	us := services.NewUserService(db, repos, store, userQueue, logger, cfg.SessionTTL)
	fs := services.NewFileService(db, repos, volume, fileQueue, logger)
	resolver := auth.NewResolver(store, db, repos)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		store:       store,
		userService: us,
		fileService: fs,
		resolver:    resolver,
	}, nil
}

func newVolume(ctx context.Context, cfg *config.Config) (storage.Volume, error) {
	switch cfg.StorageBackend {
	case config.BackendDisk:
		return storage.NewDiskVolume(cfg.VolumePath), nil
	case config.BackendS3:
		return storage.NewS3Volume(ctx, storage.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	}
	return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := hs.NewServer(app.config.EndpointAddr, app.logger, app.userService,
		app.fileService, app.resolver, app.store, app.db)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}

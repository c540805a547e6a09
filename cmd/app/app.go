package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"photofeed/internal/codestore"
	"photofeed/internal/config"
	"photofeed/internal/database"
	"photofeed/internal/notify"
	"photofeed/internal/repository"
	"photofeed/internal/service"
	"photofeed/internal/storage"
)

// App holds the long lived dependencies of the API process.
type App struct {
	DB         *database.DB
	Codes      *codestore.Store
	Dispatcher *notify.Dispatcher
	Repo       *repository.Repository
	Services   *service.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("init minio: %w", err)
	}

	rdb, err := codestore.Connect(ctx, cfg.Redis)
	if err != nil {
		db.CloseDB()
		return nil, err
	}
	codes := codestore.New(rdb)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	dispatcher := notify.NewDispatcher(
		repo.Device,
		repo.Notification,
		notify.LogPusher{Log: log.With().Str("component", "push").Logger()},
		notify.WithWorkers(cfg.Notify.Workers),
		notify.WithQueueSize(cfg.Notify.QueueSize),
		notify.WithLogger(log.With().Str("component", "notify").Logger()),
	)

	mailer := service.LogMailer{Log: log.With().Str("component", "mail").Logger()}
	services := service.NewService(repo, cfg, minioClient, dispatcher, codes, mailer)

	return &App{
		DB:         db,
		Codes:      codes,
		Dispatcher: dispatcher,
		Repo:       repo,
		Services:   services,
	}, nil
}

// Start launches the background workers.
func (a *App) Start(ctx context.Context) {
	a.Dispatcher.Start(ctx)
}

// Close drains pending notifications and releases connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Dispatcher.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("notify shutdown: %w", err))
	}
	if err := a.Codes.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis close: %w", err))
	}
	if err := a.DB.CloseDB(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	}
	return errors.Join(errs...)
}

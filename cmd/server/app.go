package main

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application bundles the wired dependencies the router needs.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	userStore  store.UserStore
	taskStore  store.TaskStore
	accounts   *service.AccountService
	exporter   *service.TaskExportService
	jwtService auth.JWTService
}

// newApplication wires the stores and services on top of the database
// connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	userStore := postgres.NewPostgresUserStore(db, hasher, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: userStore,
		taskStore: taskStore,
		accounts:  service.NewAccountService(userStore, db, logger),
		exporter:  service.NewTaskExportService(taskStore, logger),
		jwtService: auth.NewJWTService(
			cfg.Auth.JWTSecret,
			time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute),
	}
}

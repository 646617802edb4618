package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "taskboard/docs"
	"taskboard/internal/apiclient"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/repository/db"
	"taskboard/internal/server"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

const (
	shutdownTimeout = 10 * time.Second
	initTimeout     = 10 * time.Second
)

// @title        Taskboard
// @version      1.0
// @description  Browser client for the task scheduler API.
// @BasePath     /
func main() {
	// load configs/config.yml and TASKBOARD_* env
	cfg, err := config.Load(config.New())
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies; the view reads state and notices, the stores
	// render through the view
	repos := repository.NewRepository(conn)
	api := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.APITimeout))
	state := service.NewState()
	notifier := service.NewNotifier(cfg.NoticeDuration, log)
	v := view.NewController(state, notifier, log)
	notifier.OnChange(v.Render)

	services, err := service.NewService(service.Deps{
		State:         state,
		Notifier:      notifier,
		Repos:         repos,
		API:           api,
		View:          v,
		ConfirmSecret: cfg.ConfirmSecret,
		ConfirmTTL:    cfg.ConfirmTTL,
		Log:           log,
	})
	if err != nil {
		log.Fatalw("failed to init services", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout(cfg))
	services.Init(ctx)
	cancel()

	apiHandler := handlers.NewHandler(services, v, log)

	srv := server.New(cfg.Port, apiHandler.InitRoutes(), log)
	runHTTPServer(srv, log)

	waitForShutdown(srv, log)
}

// openDB opens the client-side storage file.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening client storage", "path", cfg.DBPath, "api", cfg.APIBaseURL)
	return db.InitDB(cfg.DBPath)
}

// restoreTimeout bounds the initial session restore and task load.
func restoreTimeout(cfg config.Config) time.Duration {
	if cfg.APITimeout > 0 {
		return cfg.APITimeout
	}
	return initTimeout
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err, "addr", srv.Addr())
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

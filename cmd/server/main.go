// Package main initializes and starts the HoloFavs favorites server,
// setting up configuration, logging, database connections, repositories,
// services, handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/HoloFavs/internal/config"
	"github.com/atinyakov/HoloFavs/internal/db"
	"github.com/atinyakov/HoloFavs/internal/logger"
	"github.com/atinyakov/HoloFavs/internal/repository"
	"github.com/atinyakov/HoloFavs/internal/server/handler/http"
	"github.com/atinyakov/HoloFavs/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	db.StartInactiveFavoritesCleaner(ctx, postgresDB,
		options.CleanupInterval,
		options.Retention,
		zapLogger,
	)

	// Repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	catalogRepo := repository.NewPostgresCatalogRepository(postgresDB)
	favoriteRepo := repository.NewPostgresFavoriteRepository(postgresDB)

	// Business-logic services.
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, userRepo)

	router := http.NewRouter(
		&http.CatalogHandler{CatalogService: catalogService},
		&http.UserHandler{UserService: userService},
		&http.FavoriteHandler{FavoriteService: favoriteService},
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
			err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
		} else {
			zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
			err = server.ListenAndServe()
		}
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

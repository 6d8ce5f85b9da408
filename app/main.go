package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebalashov/filmsync/app/api"
	"github.com/ebalashov/filmsync/app/catalog"
	"github.com/ebalashov/filmsync/app/cfg"
	"github.com/ebalashov/filmsync/app/database"
	"github.com/ebalashov/filmsync/app/ingest"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if appCfg.Serve {
		runServer(appCfg, db)
		return
	}

	runSync(appCfg, db)
}

// runSync performs one full catalog sync and exits. Every error is fatal;
// there is no partial "best effort" completion.
func runSync(appCfg *cfg.Cfg, db *database.DB) {
	migrator := database.NewMigrator(db)
	client := catalog.NewClient(appCfg.BaseURL, appCfg.UserAgent, appCfg.PageDelay, appCfg.RequestTimeout)
	reconciler := ingest.NewReconciler(
		database.NewFilmRepository(db),
		database.NewConsumableRepository(db),
	)
	runner := ingest.NewRunner(migrator, client, reconciler,
		database.NewMetadataRepository(db), appCfg.Countries)

	log.Printf("Starting sync of %d countries...", len(appCfg.Countries))

	if err := runner.Run(context.Background()); err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	log.Println("Sync complete")
}

func runServer(appCfg *cfg.Cfg, db *database.DB) {
	handler := api.NewHandler(
		database.NewFilmRepository(db),
		database.NewConsumableRepository(db),
		database.NewMetadataRepository(db),
		appCfg.Countries,
	)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Serving catalog on port %s", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zauartcc/datafeed/api"
	"github.com/zauartcc/datafeed/collector"
	"github.com/zauartcc/datafeed/config"
	"github.com/zauartcc/datafeed/db"
	"github.com/zauartcc/datafeed/pireps"
	"github.com/zauartcc/datafeed/services/statsapi"
	"github.com/zauartcc/datafeed/state"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	rgn, err := config.LoadRegion(cfg.RegionFile)
	if err != nil {
		log.Fatalf("Failed to load region configuration: %v", err)
	}

	database, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	store := state.NewMemory()
	store.Set("airports", strings.Join(rgn.Airports(), "|"), 0)

	var notifier collector.Notifier
	if cfg.StatsAPIURL != "" {
		notifier = statsapi.New(cfg.StatsAPIURL, cfg.StatsAPIKey)
	}

	c := collector.New(cfg, rgn, store, database, notifier)
	ingester := pireps.New(cfg, rgn, database)
	router := api.NewRouter(c, database, store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	g.Go(func() error {
		log.Printf("Starting API server on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	log.Printf("Starting collector (poll interval: %s, report interval: %s)",
		cfg.PollInterval, cfg.ReportInterval)

	g.Go(func() error {
		// Initial collection before the first tick
		if err := c.Poll(ctx); err != nil {
			log.Printf("Error collecting data: %v", err)
		}
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()
		c.Run(ctx, ticker.C)
		return nil
	})
	g.Go(func() error {
		if err := ingester.Poll(ctx); err != nil {
			log.Printf("Error ingesting PIREPs: %v", err)
		}
		ticker := time.NewTicker(cfg.ReportInterval)
		defer ticker.Stop()
		ingester.Run(ctx, ticker.C)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Shutting down with error: %v", err)
	}
}

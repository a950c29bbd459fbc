package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/config"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/query"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/services"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Run drives a short scripted session against the mock backend: log in,
// create a link, record a few clicks, then print the analytics report.
func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Store
	st := store.New(logger)
	if cfg.SeedDemoData {
		st.Seed()
		logger.Info("Seeded demo data")
	}

	// 4. Initialize Services
	geo := services.NewGeoResolver(cfg.GeoIPDBPath, logger)
	defer geo.Close()

	var limiter *services.IPRateLimiter
	if cfg.ClickRatePerSec > 0 {
		limiter = services.NewIPRateLimiter(rate.Limit(cfg.ClickRatePerSec), cfg.ClickRateBurst, logger)
		limiter.StartCleanup(ctx, time.Hour)
	}

	api := services.NewAPI(cfg, logger, st, geo, limiter, store.DemoUser)
	auth := services.NewAuthService(store.DemoUser, cfg, logger)
	analytics := services.NewAnalyticsService()

	// 5. Scripted Session
	unsubscribe := auth.OnAuthStateChanged(func(state services.AuthState) {
		logger.Info("Auth state changed", "loggedIn", state.User != nil, "isLoading", state.IsLoading)
	})
	defer unsubscribe()

	auth.Login("/dashboard")

	link, err := api.CreateLink(ctx, services.CreateLinkInput{
		OriginalURL: "https://example.com/campaigns/launch-announcement",
	})
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}

	visits := []services.ClickMeta{
		{UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", IPAddress: "203.0.113.10", Referrer: "https://google.com"},
		{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", IPAddress: "203.0.113.11", Referrer: "https://twitter.com"},
		{UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", IPAddress: "203.0.113.11"},
	}
	for _, meta := range visits {
		if _, err := api.RecordClick(ctx, link.ID, meta); err != nil {
			return fmt.Errorf("failed to record click: %w", err)
		}
	}

	links, err := api.ListLinks(ctx, query.Options{
		OrderBy: &query.Order{Field: "createdAt", Direction: query.Desc},
	})
	if err != nil {
		return err
	}
	clicks, err := api.ListClicks(ctx, query.Options{})
	if err != nil {
		return err
	}

	report := analytics.BuildReport(links, clicks)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Println(string(out))

	auth.Logout("/")
	return nil
}

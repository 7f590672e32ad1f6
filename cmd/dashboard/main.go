package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"TickerDesk/internal/cache"
	"TickerDesk/internal/chart"
	"TickerDesk/internal/collector"
	"TickerDesk/internal/config"
	"TickerDesk/internal/handlers"
	"TickerDesk/internal/model"
	"TickerDesk/internal/news"
	"TickerDesk/internal/notifier"
	"TickerDesk/internal/pipeline"
	"TickerDesk/internal/recorder"
	"TickerDesk/internal/registry"
	"TickerDesk/internal/scheduler"
)

const version = "1.0.0"

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(log)
	log.Info("TickerDesk starting", "version", version, "config", cfgPath)

	if err := cfg.Validate(); err != nil {
		log.Error("config validation", "error", err)
		os.Exit(1)
	}

	reg, err := registry.New(cfg.Tickers, cfg.DefaultTicker)
	if err != nil {
		log.Error("init registry", "error", err)
		os.Exit(1)
	}

	// Market data
	var provider collector.Provider
	switch cfg.DataSource.Provider {
	case "rest":
		provider = collector.NewRESTProvider(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		provider = &collector.MockProvider{}
	default:
		provider = collector.NewYahooProvider(cfg.Proxy)
	}
	log.Info("data source", "provider", provider.Name(), "interval", cfg.Market.Interval)

	colOpts := []collector.Option{collector.WithLogger(log)}
	var sweeper scheduler.Sweeper
	if cfg.Cache.TTL > 0 {
		hc := cache.New[string, model.PriceHistory](cfg.Cache.TTL)
		colOpts = append(colOpts, collector.WithCache(hc))
		sweeper = hc
		log.Info("history cache enabled", "ttl", cfg.Cache.TTL)
	}
	col := collector.NewCollector(provider, cfg.Market.Suffix, cfg.Market.Interval, cfg.Market.LookbackYears, colOpts...)

	// News
	extractor := news.NewSelectorExtractor(cfg.News.BlockSelector, cfg.News.LinkSelector)
	fetcher := news.NewFetcher(cfg.News.URLTemplate, extractor, cfg.Proxy, news.WithUserAgent(cfg.News.UserAgent))

	// Init recorder
	var rec recorder.Recorder
	var stats handlers.StatsSource
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			stats = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	pipe := pipeline.New(reg, fetcher, col,
		pipeline.WithRecorder(rec),
		pipeline.WithChartMetadata(chart.Merge(chart.DefaultMetadata(), cfg.Chart)),
		pipeline.WithNewsLimit(cfg.News.Limit),
		pipeline.WithSMAWindow(cfg.Indicator.SMAWindow),
		pipeline.WithRSIPeriod(cfg.Indicator.RSIPeriod),
		pipeline.WithTimeouts(cfg.News.Timeout, cfg.Market.Timeout),
		pipeline.WithLogger(log),
	)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(sweeper, rec, cfg.Schedule.RetentionDays, log)
	if err := sched.RegisterAll(cfg.Schedule.SweepCron, cfg.Schedule.RetentionCron); err != nil {
		log.Error("register cron tasks", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// Optional Telegram front-end
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		go tn.StartPolling(ctx, notifier.NewCommandHandler(pipe, reg))
	}

	// HTTP API
	requestTimeout := max(cfg.News.Timeout, cfg.Market.Timeout) + 5*time.Second
	app := fiber.New(fiber.Config{
		StrictRouting: true,
		ServerHeader:  "TickerDesk",
		AppName:       "TickerDesk " + version,
		ReadTimeout:   10 * time.Second,
		WriteTimeout:  requestTimeout,
		ErrorHandler:  handlers.CustomErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
	}))
	handlers.Register(app,
		handlers.NewDashboardHandler(pipe, reg, stats, requestTimeout),
		handlers.NewHealthHandler(version),
	)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr); err != nil {
			log.Error("http server", "error", err)
			cancel()
		}
	}()
	log.Info("TickerDesk is running", "addr", cfg.HTTP.Addr, "tickers", reg.Tickers())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	log.Info("TickerDesk stopped")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"nuclight.org/dalbozz/internal/bot"
	"nuclight.org/dalbozz/internal/config"
	"nuclight.org/dalbozz/internal/logger"
	"nuclight.org/dalbozz/internal/poll"
	"nuclight.org/dalbozz/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to parse log level: %v", err)
	}

	var l logger.Logger
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Fatalf("Failed to init sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
		l = logger.NewLoggerWithSentry(level)
	} else {
		l = logger.NewLogger(level)
	}
	logger.RouteDiscordgo(l)

	l.Info("config loaded",
		"db_path", cfg.DBPath,
		"guild_id", cfg.GuildID,
		"poll_ttl", cfg.PollTTL,
		"sentry", cfg.SentryDSN != "",
	)

	var archive poll.Archive
	if cfg.DBPath != "" {
		db, err := storage.NewDB(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		version, err := db.Migrate()
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		l.Info("database initialized", "schema_version", version)

		archive = storage.NewArchiveRepository(db)
	}

	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	gateway := bot.NewGateway(session)
	registry := poll.NewRegistry(gateway, archive, l, cfg.PollTTL)
	b := bot.New(session, gateway, registry, cfg.GuildID, l)
	b.RegisterHandlers()

	if err := b.Start(); err != nil {
		l.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.RunReaper(ctx, cfg.ReapInterval)
	})
	g.Go(func() error {
		<-ctx.Done()
		l.Info("shutting down")
		return b.Stop()
	})

	if err := g.Wait(); err != nil {
		l.Error("bot stopped with error", "error", err)
	}
}

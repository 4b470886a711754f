package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/MikeSquared-Agency/breakdowns/internal/analysis"
	"github.com/MikeSquared-Agency/breakdowns/internal/config"
	"github.com/MikeSquared-Agency/breakdowns/internal/hermes"
	"github.com/MikeSquared-Agency/breakdowns/internal/slack"
	"github.com/MikeSquared-Agency/breakdowns/internal/store"
)

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging installs a JSON logger on w as the default. debug overrides level.
func setupLogging(level string, debug bool, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// connectCollaborators wires the optional store, NATS and Slack collaborators
// that cfg configures. Connection failures are logged and the collaborator is
// left out. The returned func releases every connection.
func connectCollaborators(ctx context.Context, cfg config.Config, logger *slog.Logger) (analysis.Deps, func()) {
	var deps analysis.Deps
	var closers []func()

	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to connect to database, runs will not be persisted", "error", err)
		} else if err := db.Migrate(ctx); err != nil {
			logger.Warn("failed to migrate database, runs will not be persisted", "error", err)
			db.Close()
		} else {
			deps.Store = db
			closers = append(closers, db.Close)
			logger.Info("database connected")
		}
	}

	if client := connectHermes(ctx, cfg, logger); client != nil {
		deps.Events = client
		closers = append(closers, client.Close)
	}

	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		deps.Digest = slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, logger)
		logger.Info("slack poster ready", "channel", cfg.SlackChannel)
	}

	return deps, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func connectHermes(ctx context.Context, cfg config.Config, logger *slog.Logger) *hermes.Client {
	if cfg.NatsURL == "" {
		return nil
	}
	client, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
	if err != nil {
		logger.Warn("failed to connect to NATS, run events will not be published", "error", err)
		return nil
	}
	logger.Info("NATS connected", "url", cfg.NatsURL)
	return client
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"slash-command-kit/internal/config"
	"slash-command-kit/internal/dispatch"
	"slash-command-kit/internal/extension"
	"slash-command-kit/internal/registry"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

type App struct {
	config        *config.Config
	discord       *discordgo.Session
	gate          *registry.Gate
	registry      *registry.Registry
	dispatcher    *dispatch.Dispatcher
	loader        *extension.Loader
	scheduler     *cron.Cron
	metricsServer *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	discord, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		discord:   discord,
		gate:      registry.NewGate(),
		scheduler: cron.New(),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.discord.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is online", "user", r.User.Username)
		a.gate.Open()
	})

	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	appID, err := a.appID()
	if err != nil {
		return err
	}

	a.registry = registry.New(a.discord, appID, a.gate,
		registry.WithTimeout(a.config.CommandTimeout),
		registry.WithCreateRate(a.config.CreateRate),
	)

	comps := dispatch.NewComponentTable(a.config.ComponentTTL)
	a.dispatcher = dispatch.New(a.registry, dispatch.NewSessionResolver(a.discord), comps)
	a.discord.AddHandler(a.dispatcher.HandleFunc())

	cache := registry.NewHashCache(a.config.HashCacheDir)
	if err := a.registry.Sync(ctx, a.config.GuildID, Commands(a.config.GuildID, comps), cache); err != nil {
		return fmt.Errorf("syncing commands: %w", err)
	}

	a.loader = extension.NewLoader(a.registry, slog.Default())
	RegisterExtensions(a.loader, a.config)
	a.loader.LoadAll(ctx)

	if _, err := a.scheduler.AddFunc(a.config.SweepSchedule, func() {
		if n := comps.EvictExpired(); n > 0 {
			slog.Debug("Swept expired component bindings", "evicted", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling component sweep: %w", err)
	}
	a.scheduler.Start()

	a.startMetricsServer()

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Metrics server shutdown error", "error", err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			return err
		}
	}

	return nil
}

// appID returns the bot's application id, fetching it when the session state
// has not seen a ready payload yet.
func (a *App) appID() (string, error) {
	if a.discord.State.User != nil && a.discord.State.User.ID != "" {
		return a.discord.State.User.ID, nil
	}
	user, err := a.discord.User("@me")
	if err != nil {
		return "", fmt.Errorf("fetching bot user: %w", err)
	}
	return user.ID, nil
}

func (a *App) startMetricsServer() {
	if a.config.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metricsServer = &http.Server{Addr: a.config.MetricsAddr, Handler: mux}

	go func() {
		slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server error", "error", err)
		}
	}()
}

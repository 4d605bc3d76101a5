package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/socialhook/support-bot/internal/analytics"
	"github.com/socialhook/support-bot/internal/bot"
	"github.com/socialhook/support-bot/internal/config"
	"github.com/socialhook/support-bot/internal/database"
	"github.com/socialhook/support-bot/internal/digest"
	"github.com/socialhook/support-bot/internal/kafka"
	"github.com/socialhook/support-bot/internal/router"
	"github.com/socialhook/support-bot/internal/store"
	"github.com/socialhook/support-bot/internal/telegram"
)

// App wires the bot: config → migrate → db → store → telegram → dispatcher,
// plus the HTTP server (health probes, webhook mode) and the daily digest.
type App struct {
	cfg      *config.Config
	client   *telegram.Client
	bot      *bot.Bot
	reporter *digest.Reporter
	producer *kafka.Producer
	httpSrv  *http.Server
}

func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	st := store.New(db)
	client := telegram.New(cfg.BotToken)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket)

	b := bot.New(bot.Deps{
		API:         client,
		Store:       st,
		Analytics:   analytics.NewClient(cfg.AnalyticsURL),
		Producer:    producer,
		AdminChatID: cfg.AdminChatID,
	})

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: BOT_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	reporter := digest.New(st, client, cfg.AdminChatID, loc, cfg.DigestHour)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(b, cfg.WebhookURL != "", cfg.WebhookSecret),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:      cfg,
		client:   client,
		bot:      b,
		reporter: reporter,
		producer: producer,
		httpSrv:  httpSrv,
	}, nil
}

// Run starts the HTTP server, the digest loop and the update source, then
// blocks until ctx is cancelled and shuts everything down.
func (a *App) Run(ctx context.Context) error {
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	go func() {
		if err := a.reporter.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("digest: %v", err)
		}
	}()

	if a.cfg.WebhookURL != "" {
		regCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := a.client.SetWebhook(regCtx, a.cfg.WebhookURL, a.cfg.WebhookSecret)
		cancel()
		if err != nil {
			return fmt.Errorf("register webhook: %w", err)
		}
		log.Printf("bot: receiving updates via webhook %s", a.cfg.WebhookURL)
		<-ctx.Done()
	} else {
		// A leftover webhook makes getUpdates return 409.
		regCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.client.SetWebhook(regCtx, "", ""); err != nil {
			log.Printf("bot: clear webhook: %v", err)
		}
		cancel()
		log.Print("bot: polling for updates")
		if err := a.bot.Poll(ctx, a.client); err != nil && ctx.Err() == nil {
			return fmt.Errorf("poll: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Printf("kafka: close: %v", err)
	}
	return nil
}

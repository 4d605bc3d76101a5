package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/socialhook/support-bot/internal/config"
	"github.com/socialhook/support-bot/internal/database"
	"github.com/socialhook/support-bot/internal/digest"
	"github.com/socialhook/support-bot/internal/store"
	"github.com/socialhook/support-bot/internal/telegram"
	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the daily start-count digest to the operator now and purge stale sessions",
	RunE:  runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("runtime.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(dsn)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("config: BOT_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	st := store.New(db)
	client := telegram.New(cfg.BotToken)
	reporter := digest.New(st, client, cfg.AdminChatID, loc, cfg.DigestHour)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	if err := reporter.SendOnce(ctx); err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	n, err := st.PurgeStaleSessions(ctx)
	if err != nil {
		return fmt.Errorf("purge stale sessions: %w", err)
	}
	log.Printf("digest: sent, purged %d stale sessions", n)
	return nil
}

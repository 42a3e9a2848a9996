package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/plantbot/internal/bot"
	"github.com/sandeepkv93/plantbot/internal/config"
	"github.com/sandeepkv93/plantbot/internal/garden"
	"github.com/sandeepkv93/plantbot/internal/session"
	"github.com/sandeepkv93/plantbot/internal/storage"
	"github.com/sandeepkv93/plantbot/internal/taskgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "plantbot failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, logLevel string

	cmd := &cobra.Command{
		Use:           "plantbot",
		Short:         "Telegram bot that tracks houseplant care tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), envFile, logLevel)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug|info|warn|error)")
	return cmd
}

func run(ctx context.Context, envFile, logLevel string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = config.ParseLevel(logLevel)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var blob storage.Blob
	if cfg.GCSBucket != "" {
		gcsBlob, err := storage.NewGCSBlob(ctx, cfg.GCSBucket, cfg.GCSObject)
		if err != nil {
			return err
		}
		defer gcsBlob.Close()
		blob = gcsBlob
	} else {
		log.Warn("GCS_BUCKET_NAME unset, using local file store", "path", cfg.DataFile)
		blob = storage.NewFileBlob(cfg.DataFile)
	}

	store := storage.NewDocumentStore(blob, log)
	generator := taskgen.New(
		taskgen.NewOpenAIClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.Model),
		log,
	)
	repo := garden.NewRepository(store, generator)
	sessions := session.NewManager()

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("connect to telegram: %w", err)
	}

	return bot.New(api, repo, sessions, log).Run(ctx, cfg.WebhookURL, cfg.ListenAddr)
}

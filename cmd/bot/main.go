package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/wikiseek/internal/config"
	"github.com/kitbuilder587/wikiseek/internal/metrics"
	"github.com/kitbuilder587/wikiseek/internal/search/wikipedia"
	"github.com/kitbuilder587/wikiseek/internal/telegram"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	m := metrics.New()

	searchClient := wikipedia.New(wikipedia.Config{
		BaseURL: cfg.Wikipedia.BaseURL,
		Limit:   cfg.Wikipedia.Limit,
		Timeout: cfg.Wikipedia.Timeout,
	}, logger)

	bot, err := telegram.New(telegram.BotConfig{
		Token:             cfg.Telegram.Token,
		Debug:             cfg.Telegram.Debug,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		AlertTTL:          cfg.Alert.TTL,
		SessionTTL:        cfg.Session.TTL,
	}, searchClient, logger, m)
	if err != nil {
		logger.Fatal("create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsServer := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: metrics.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("metrics server listening", zap.String("addr", cfg.Metrics.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("shutdown with error", zap.Error(err))
	}

	logger.Info("bye")
}

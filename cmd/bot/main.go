package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizbot/internal/cache"
	"quizbot/internal/config"
	"quizbot/internal/database"
	"quizbot/internal/engine"
	"quizbot/internal/health"
	"quizbot/internal/logger"
	"quizbot/internal/recorder"
	"quizbot/internal/repository"
	"quizbot/internal/sampler"
	"quizbot/internal/telegram"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Telegram.Token == "" {
		log.Fatal("telegram token is required (telegram.token or TELEGRAM_TOKEN)")
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	questionStore := repository.NewQuestionStore(db)
	progressStore := repository.NewProgressStore(redisClient)
	resultStore := repository.NewResultStore(db)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	smp := sampler.New(questionStore, progressStore, rng, appLogger)
	rec := recorder.New(resultStore, appLogger)

	bot, err := telegram.New(cfg.Telegram, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Telegram bot", zap.Error(err))
	}

	eng := engine.New(
		engine.Config{
			QuestionsPerRound:  cfg.Quiz.QuestionsPerRound,
			FeedbackDelay:      cfg.Quiz.FeedbackDelay,
			SessionIdleTTL:     cfg.Quiz.SessionIdleTTL,
			MembershipFailOpen: cfg.Telegram.MembershipFailOpen,
		},
		smp, rec, questionStore, bot, bot, bot, appLogger,
	)
	bot.Attach(eng)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	healthApp := health.NewApp()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	g.Go(func() error {
		eng.RunJanitor(ctx)
		return nil
	})
	g.Go(func() error {
		return healthApp.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	})
	g.Go(func() error {
		<-ctx.Done()
		return healthApp.ShutdownWithTimeout(5 * time.Second)
	})

	appLogger.Info("quiz bot started", zap.Int("health_port", cfg.Server.Port))
	if err := g.Wait(); err != nil {
		appLogger.Error("shutdown with error", zap.Error(err))
	}
	appLogger.Info("quiz bot stopped")
}

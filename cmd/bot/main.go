package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/household_bot/internal/app"
	"github.com/Freeeeeet/household_bot/internal/client"
	"github.com/Freeeeeet/household_bot/internal/config"
	"github.com/Freeeeeet/household_bot/internal/controller"
	"github.com/Freeeeeet/household_bot/internal/migrations"
	"github.com/Freeeeeet/household_bot/internal/repository"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting household bot",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("timezone", cfg.Location.String()),
		zap.Int("token_length", len(cfg.TelegramToken)),
	)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	api := client.New(cfg.APIBaseURL, cfg.APITimeout, logger.Named("api"), client.WithLocation(cfg.Location))
	scheduleService := service.NewScheduleService(api, cfg.Location, logger)
	consumableService := service.NewConsumableService(api, cfg.Location, logger)
	chatService := service.NewChatService(repository.NewChatRepository(pool), logger)

	botInstance, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram API error", zap.Error(err))
	}))
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(botInstance, scheduleService, consumableService, chatService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд необязательно для работы
		logger.Warn("Bot started without commands menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(
		cfg.ExpiryAlertCron,
		cfg.ExpiryAlertDays,
		cfg.Location,
		consumableService,
		chatService,
		botController,
		logger,
	)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	botController.Start(ctx)
	return nil
}

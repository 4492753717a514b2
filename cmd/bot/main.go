package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/sistem-gaji/internal/app"
	"github.com/cmlabs-hris/sistem-gaji/internal/config"
	"github.com/cmlabs-hris/sistem-gaji/internal/delivery/telegram"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if cfg.Telegram.Token == "" {
		slog.Error("TELEGRAM_TOKEN is required for the bot")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.Telegram.PollTimeout},
		OnError: func(err error, c telebot.Context) {
			slog.Error("telegram: handler error", "error", err)
		},
	})
	if err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}

	handler := &telegram.Handler{
		Bot:        bot,
		Auth:       application.Auth,
		Attendance: application.Attendance,
		Payroll:    application.Payroll,
		Sessions:   telegram.NewSessions(),
	}
	handler.Register()

	go bot.Start()
	slog.Info("Bot running", "store", cfg.Store.Driver)

	<-ctx.Done()
	bot.Stop()
	slog.Info("Bot stopped")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parthselarka/focusmate/internal/config"
	"github.com/parthselarka/focusmate/internal/notify"
	"github.com/parthselarka/focusmate/internal/planner"
	"github.com/parthselarka/focusmate/internal/repository"
	"github.com/parthselarka/focusmate/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	gateway, err := newGateway(cfg)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}

	resolver := planner.NewWindowResolver(loc, cfg.Lookahead)
	taskSvc := planner.NewTaskService(taskRepo, resolver)
	timerSvc := planner.NewTimerService(settingsRepo)
	authSvc := planner.NewAuthService(userRepo, cfg.SessionTTL)
	reminderSvc := planner.NewReminderService(taskRepo, resolver, gateway)

	scheduler := planner.NewScheduler(loc)
	if _, err := scheduler.Every(cfg.ScanInterval, func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		reminderSvc.Tick(tickCtx)
	}); err != nil {
		log.Fatalf("schedule reminder scan: %v", err)
	}
	if _, err := scheduler.Every(time.Hour, func() {
		cleanCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := userRepo.DeleteExpiredSessions(cleanCtx, time.Now()); err != nil {
			log.Printf("session cleanup: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule session cleanup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	api := server.New(authSvc, taskSvc, timerSvc, server.Options{
		ResetMailer: newResetMailer(cfg),
		BaseURL:     cfg.BaseURL,
		SessionTTL:  cfg.SessionTTL,
	})
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Focus-mate listening on %s", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

func newGateway(cfg config.Config) (notify.Gateway, error) {
	if cfg.NotifyChannel == "telegram" {
		return notify.NewTelegramGateway(cfg.TelegramToken)
	}
	return notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom), nil
}

// newResetMailer returns the SMTP sender for password-reset links, or
// nil when no SMTP host is configured (telegram-only deployments).
func newResetMailer(cfg config.Config) server.ResetMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
}

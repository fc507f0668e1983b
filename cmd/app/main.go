package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/waldy-ctt/TFLH-BE/internal"
	"github.com/waldy-ctt/TFLH-BE/internal/data"
	"github.com/waldy-ctt/TFLH-BE/internal/handler"
	"github.com/waldy-ctt/TFLH-BE/internal/live"
	"github.com/waldy-ctt/TFLH-BE/internal/middleware"
	"github.com/waldy-ctt/TFLH-BE/internal/service"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CHAT_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		cfg = internal.DefaultConfig()
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	db, err := data.Open(cfg.DBPath)
	if err != nil {
		log.Error("could not open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	storage := data.NewStorageManager(db)
	log.Info("database ready", "path", cfg.DBPath)

	registry := live.NewRegistry(log)
	dispatcher := live.NewDispatcher(registry, storage.GetConversationRepository(), log)

	authService := service.NewAuthService(storage.GetUserRepository(), log)
	userService := service.NewUserService(storage.GetUserRepository(), log)
	conversationService := service.NewConversationService(
		storage.GetConversationRepository(), storage.GetUserRepository(), dispatcher, log)
	messageService := service.NewMessageService(
		storage.GetMessageRepository(), storage.GetConversationRepository(),
		storage.GetUserRepository(), dispatcher, log)
	moderationService := service.NewModerationService(
		storage.GetVoteRepository(), storage.GetConversationRepository(),
		storage.GetUserRepository(), dispatcher, log)

	router := handler.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewConversationHandler(conversationService, moderationService),
		handler.NewMessageHandler(messageService),
		handler.NewWSHandler(registry, log),
	)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.HTTPServerPort),
		Handler:        middleware.CORS(cfg.AllowedOrigin, router),
		ReadTimeout:    time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		registry.Shutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("error during shutdown", "error", err)
		}
	}()

	log.Info("http server starting", "port", cfg.HTTPServerPort)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

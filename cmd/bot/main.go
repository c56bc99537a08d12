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

	"github.com/joho/godotenv"

	"github.com/varsha-bot/varsha/internal/config"
	"github.com/varsha-bot/varsha/internal/handler"
	"github.com/varsha-bot/varsha/internal/model/persona"
	"github.com/varsha-bot/varsha/internal/service/ai"
	"github.com/varsha-bot/varsha/internal/service/bot"
	chatservice "github.com/varsha-bot/varsha/internal/service/chat"
	memoryservice "github.com/varsha-bot/varsha/internal/service/memory"
	"github.com/varsha-bot/varsha/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	registry := persona.NewMemoryRegistry(persona.Seed(cfg.Bot.Name))
	if _, ok := registry.Find(cfg.Bot.DefaultPersona); !ok {
		log.Fatalf("DEFAULT_PERSONA %q is not a registered persona", cfg.Bot.DefaultPersona)
	}

	chatSvc := chatservice.NewService(registry, cfg.Bot.DefaultPersona)
	memorySvc := memoryservice.NewService(cfg.Bot.MemoryLimit)

	aiSvc, err := ai.NewService(ctx, registry, chatSvc, memorySvc, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	log.Println("AI service initialized successfully")

	tgClient := telegram.NewClient(telegram.APIBase+cfg.Bot.Token, 30*time.Second)
	engine := bot.NewService(tgClient, aiSvc, chatSvc, registry, cfg.Bot.Name)

	if cfg.Bot.WebhookURL != "" {
		webhookURL := cfg.Bot.WebhookURL + "/webhook/" + cfg.Bot.Token
		if err := tgClient.SetWebhook(ctx, webhookURL); err != nil {
			log.Fatalf("failed to register webhook: %v", err)
		}
		log.Printf("webhook registered at %s", cfg.Bot.WebhookURL)
	} else {
		log.Println("WEBHOOK_URL not set, falling back to long polling")
		go engine.Poll(ctx, tgClient)
	}

	router := handler.NewRouter(registry, engine, cfg.Bot.Token)

	startServer(ctx, cfg.Server, router, cfg.Bot.Name)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, botName string) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("%s listening on %s", botName, serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

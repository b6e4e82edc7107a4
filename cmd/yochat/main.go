package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yochat/yochat/internal/config"
	"github.com/yochat/yochat/internal/database"
	"github.com/yochat/yochat/internal/llm"
	"github.com/yochat/yochat/internal/secrets"
	"github.com/yochat/yochat/internal/server"
	"github.com/yochat/yochat/internal/service"
	"github.com/yochat/yochat/internal/tui"
	"github.com/yochat/yochat/internal/web"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	games := service.NewGameService(db, llmProvider(cfg), service.Settings{
		ViolationChance:    cfg.Game.ViolationChance,
		StartingMoney:      cfg.Game.StartingMoney,
		StartingReputation: cfg.Game.StartingReputation,
		Seed:               cfg.Game.Seed,
	})

	switch command(os.Args) {
	case "console":
		p := tea.NewProgram(tui.New(ctx, games), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("console: %v", err)
		}

	case "reset":
		maintenance := &service.MaintenanceService{DB: db}
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		log.Println("all game data wiped")

	case "set-key":
		if len(os.Args) < 4 {
			log.Fatal("usage: yochat set-key <provider> <key>")
		}
		if err := secrets.StoreProviderKey(os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("set-key: %v", err)
		}
		log.Printf("stored key for %s", os.Args[2])

	case "delete-key":
		if len(os.Args) < 3 {
			log.Fatal("usage: yochat delete-key <provider>")
		}
		if err := secrets.DeleteProviderKey(os.Args[2]); err != nil {
			log.Fatalf("delete-key: %v", err)
		}
		log.Printf("deleted key for %s", os.Args[2])

	default:
		runServer(ctx, cfg, games)
	}
}

func command(args []string) string {
	if len(args) > 1 {
		return strings.ToLower(strings.TrimSpace(args[1]))
	}
	return ""
}

func runServer(ctx context.Context, cfg config.Config, games *service.GameService) {
	srv := server.New(games, web.Default, cfg.Server.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		errCh <- srv.Start(cfg.Server.Addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

func llmProvider(cfg config.Config) llm.Provider {
	switch strings.ToLower(strings.TrimSpace(cfg.LLM.Provider)) {
	case "openai":
		return llm.NewOpenAIProvider(resolveAPIKey(cfg), cfg.LLM.Model)
	default:
		return llm.NewOfflineProvider(cfg.Game.Seed)
	}
}

func resolveAPIKey(cfg config.Config) string {
	env := strings.TrimSpace(cfg.LLM.APIKeyEnv)
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	if k, err := secrets.FetchProviderKey(cfg.LLM.Provider); err == nil {
		return k
	}
	return strings.TrimSpace(cfg.LLM.APIKey)
}

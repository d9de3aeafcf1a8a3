// Package app wires configuration, stores, the agent manager and the HTTP
// server into one runnable unit.
package app

import (
	"context"
	"fmt"
	"log"

	"platewise/internal/agent"
	"platewise/internal/gateway/config"
	"platewise/internal/gateway/handler"
	"platewise/internal/gateway/server"
	"platewise/internal/llm"
	"platewise/internal/pipeline"
	"platewise/internal/recipe"
	"platewise/internal/repository/catalog"
	"platewise/internal/repository/prices"
	"platewise/internal/repository/wallet"
	"platewise/internal/session"
)

type App struct {
	cfg    *config.Config
	llm    llm.Client
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	cli, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	recipes, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d recipes", len(recipes))

	priceStore := prices.New(cfg.Data.PricesCSV)
	if err := priceStore.Load(); err != nil {
		return nil, err
	}
	walletStore := wallet.NewFromEnv(cfg.Data.WalletCSV)

	manager := agent.New(cli, pipeline.New(cli, recipes), priceStore, walletStore)
	sessions := session.NewService(manager)

	mux := server.NewMux(
		handler.NewSessionHandler(sessions),
		handler.NewChatHandler(sessions),
		handler.NewPricesHandler(priceStore),
		handler.NewWalletHandler(walletStore),
	)

	return &App{
		cfg:    cfg,
		llm:    cli,
		server: server.New(cfg.Port, mux),
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.llm.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case "groq":
		return llm.NewGroqClient(cfg.APIKey, cfg.Model)
	case "fake":
		return llm.NewFakeClient(), nil
	default:
		return nil, fmt.Errorf("app: unknown LLM provider %q", cfg.Provider)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) ([]recipe.Recipe, error) {
	if cfg.Catalog.Enabled {
		return catalog.LoadObject(ctx, catalog.ObjectConfig{
			Endpoint:  cfg.Catalog.Endpoint,
			Region:    cfg.Catalog.Region,
			AccessKey: cfg.Catalog.AccessKey,
			SecretKey: cfg.Catalog.SecretKey,
			Bucket:    cfg.Catalog.Bucket,
			Object:    cfg.Catalog.Object,
			UseSSL:    cfg.Catalog.UseSSL,
		})
	}
	return catalog.Load(cfg.Data.RecipesCSV)
}

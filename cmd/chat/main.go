package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"platewise/internal/agent"
	"platewise/internal/gateway/config"
	"platewise/internal/gateway/handler"
	"platewise/internal/llm"
	"platewise/internal/pipeline"
	"platewise/internal/repository/catalog"
	"platewise/internal/repository/prices"
	"platewise/internal/repository/wallet"
	"platewise/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	cli, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}
	defer cli.Close()

	recipes, err := catalog.Load(cfg.Data.RecipesCSV)
	if err != nil {
		log.Fatalf("Failed to load recipe catalog: %v", err)
	}

	priceStore := prices.New(cfg.Data.PricesCSV)
	walletStore := wallet.NewFromEnv(cfg.Data.WalletCSV)

	manager := agent.New(cli, pipeline.New(cli, recipes), priceStore, walletStore)
	sessions := session.NewService(manager)
	sess := sessions.Create("")

	fmt.Println("\nRecipe Recommendation Assistant")
	fmt.Printf("(session_id=%s, user_id=%s)\n", sess.ID, sess.UserID)
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Println("Please enter a query.")
			continue
		}
		if strings.EqualFold(input, "exit") {
			fmt.Println("Goodbye!")
			break
		}

		reply, err := sessions.HandleMessage(ctx, sess.ID, input)
		if err != nil {
			log.Printf("turn failed: %v", err)
			fmt.Println(handler.TryAgainMessage)
			continue
		}
		fmt.Printf("\nAssistant:\n%s\n\n", reply)
	}
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
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	LLM     LLMConfig
	Data    DataConfig
	Catalog CatalogObjectConfig
}

type LLMConfig struct {
	Provider string // gemini | groq | fake
	APIKey   string
	Model    string
}

type DataConfig struct {
	RecipesCSV string
	PricesCSV  string
	WalletCSV  string
}

// CatalogObjectConfig points at a recipe catalog published to an
// S3-compatible bucket. When disabled the catalog is read from
// Data.RecipesCSV instead.
type CatalogObjectConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Object    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:    *port,
		Env:     env,
		LLM:     loadLLMConfig(),
		Data:    loadDataConfig(),
		Catalog: loadCatalogObjectConfig(env),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "gemini"
	}
	return LLMConfig{
		Provider: provider,
		APIKey: firstNonEmpty(
			strings.TrimSpace(os.Getenv("LLM_API_KEY")),
			strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		),
		Model: firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_MODEL")), defaultModel(provider)),
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "groq":
		return "llama-3.3-70b-versatile"
	case "gemini":
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		RecipesCSV: firstNonEmpty(strings.TrimSpace(os.Getenv("RECIPES_CSV")), "data/recipes.csv"),
		PricesCSV:  firstNonEmpty(strings.TrimSpace(os.Getenv("PRICES_CSV")), "data/ingredient_prices.csv"),
		WalletCSV:  firstNonEmpty(strings.TrimSpace(os.Getenv("WALLET_CSV")), "data/wallet.csv"),
	}
}

func loadCatalogObjectConfig(env string) CatalogObjectConfig {
	endpoint := resolveCatalogEndpoint(env)
	object := strings.TrimSpace(os.Getenv("CATALOG_S3_OBJECT"))
	return CatalogObjectConfig{
		Enabled:   endpoint != "" && object != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("CATALOG_S3_BUCKET")), "platewise-data"),
		Object:    object,
		UseSSL:    resolveCatalogUseSSL(env),
	}
}

func resolveCatalogEndpoint(env string) string {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return strings.TrimSpace(os.Getenv("CATALOG_MINIO_ENDPOINT"))
	}
	return strings.TrimSpace(os.Getenv("CATALOG_S3_ENDPOINT"))
}

func resolveCatalogUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("CATALOG_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	LogLevel string

	// Remote catalog (product/supplier lookups)
	CatalogBaseURL      string
	CatalogAPIToken     string
	CatalogTimeout      time.Duration
	CatalogRateLimitRPS float64
	SupplierCacheTTL    time.Duration

	// Batch processing
	BatchConcurrency   int
	MaxUploadSizeBytes int64

	// Exchange form rendering
	FormTemplatePath string

	// Operator sessions
	SessionTTL time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	catalogBaseURL := getEnv("CATALOG_BASE_URL", "http://localhost:9000")
	catalogAPIToken := getEnv("CATALOG_API_TOKEN", "")
	if catalogAPIToken == "" {
		log.Println("WARNING: CATALOG_API_TOKEN is not set. Catalog requests will be unauthenticated.")
	}

	catalogRateLimitRPSStr := getEnv("CATALOG_RATE_LIMIT_RPS", "8")
	catalogRateLimitRPS, err := strconv.ParseFloat(catalogRateLimitRPSStr, 64)
	if err != nil || catalogRateLimitRPS <= 0 {
		log.Printf("WARNING: Invalid CATALOG_RATE_LIMIT_RPS '%s'. Using default 8.", catalogRateLimitRPSStr)
		catalogRateLimitRPS = 8
	}

	batchConcurrency := getEnvAsInt("BATCH_CONCURRENCY", 4)
	if batchConcurrency < 1 {
		log.Printf("WARNING: BATCH_CONCURRENCY must be >= 1, got %d. Using 1.", batchConcurrency)
		batchConcurrency = 1
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CatalogBaseURL:      catalogBaseURL,
		CatalogAPIToken:     catalogAPIToken,
		CatalogTimeout:      getEnvAsDuration("CATALOG_TIMEOUT", 15*time.Second),
		CatalogRateLimitRPS: catalogRateLimitRPS,
		SupplierCacheTTL:    getEnvAsDuration("SUPPLIER_CACHE_TTL", 10*time.Minute),

		BatchConcurrency:   batchConcurrency,
		MaxUploadSizeBytes: maxUploadSizeBytes,

		FormTemplatePath: getEnv("FORM_TEMPLATE_PATH", "data/FORM-TROCAS.xlsx"),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 8*time.Hour),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, CatalogBaseURL=%s, BatchConcurrency=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.CatalogBaseURL, Cfg.BatchConcurrency)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/lojasmimi/trocas/backend/src/catalog"
	"github.com/lojasmimi/trocas/backend/src/config"
	"github.com/lojasmimi/trocas/backend/src/forms"
	"github.com/lojasmimi/trocas/backend/src/handlers"
	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/processors"
	"github.com/lojasmimi/trocas/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Cookie, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag, Content-Disposition")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Trocas backend server starting...")

	logger.L.Info("Initializing catalog client...", "baseURL", config.Cfg.CatalogBaseURL)
	catalogClient := catalog.NewHTTPClient(catalog.ClientOptions{
		BaseURL:          config.Cfg.CatalogBaseURL,
		APIToken:         config.Cfg.CatalogAPIToken,
		Timeout:          config.Cfg.CatalogTimeout,
		RateLimitRPS:     config.Cfg.CatalogRateLimitRPS,
		SupplierCacheTTL: config.Cfg.SupplierCacheTTL,
	})
	resolver := catalog.NewResolver(catalogClient)

	logger.L.Info("Initializing services and handlers...")
	batchProcessor := processors.NewBatchProcessor(resolver, config.Cfg.BatchConcurrency)
	renderer := forms.NewRenderer(config.Cfg.FormTemplatePath)
	exchangeService := services.NewExchangeService(resolver, batchProcessor, renderer)
	sessionStore := services.NewSessionStore(config.Cfg.SessionTTL)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("POST /api/exchange/items", exchangeHandler.HandleAddItem)
	apiRouter.HandleFunc("DELETE /api/exchange/items/last", exchangeHandler.HandleRemoveLastItem)
	apiRouter.HandleFunc("GET /api/exchange/items", exchangeHandler.HandleGetItems)
	apiRouter.HandleFunc("POST /api/exchange/batch", exchangeHandler.HandleBatchUpload)
	apiRouter.HandleFunc("GET /api/exchange/batch/template", exchangeHandler.HandleBatchTemplate)
	apiRouter.HandleFunc("GET /api/exchange/form", exchangeHandler.HandleRenderForm)

	sessionMiddleware := handlers.SessionMiddleware(sessionStore)
	rootMux.Handle("/api/", sessionMiddleware(apiRouter))

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Trocas backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}

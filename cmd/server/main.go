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

	"github.com/delicioso/admin-gateway/internal/backend"
	"github.com/delicioso/admin-gateway/internal/catalog"
	"github.com/delicioso/admin-gateway/internal/config"
	"github.com/delicioso/admin-gateway/internal/handlers"
	"github.com/delicioso/admin-gateway/internal/middleware"
	"github.com/delicioso/admin-gateway/internal/service"
	"github.com/delicioso/admin-gateway/internal/session"
	"github.com/delicioso/admin-gateway/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting admin gateway",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"backend", cfg.Backend.BaseURL,
		"log_level", cfg.LogLevel,
	)

	// Backend client and catalog cache
	backendClient := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second, log)
	productCatalog := catalog.NewCache(backendClient)

	// Warm the catalog; the backend may be down, the screens refresh later
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), time.Duration(cfg.Backend.Timeout)*time.Second)
	if _, err := productCatalog.Refresh(warmCtx); err != nil {
		log.Warn("initial catalog load failed, continuing without snapshot", "error", err)
	}
	cancelWarm()

	// Session store
	sessions := session.NewStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	defer sessions.Close()

	// Services
	orderService := service.NewOrderService(backendClient, log)

	// Handlers
	healthHandler := handlers.NewHealthHandler(log)
	cartHandler := handlers.NewCartHandler(productCatalog, orderService, log)
	catalogHandler := handlers.NewCatalogHandler(productCatalog, backendClient, log)
	packagingHandler := handlers.NewPackagingHandler(backendClient, log)
	reportHandler := handlers.NewReportHandler(backendClient, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog, inventory and report screens (pass-through views)
		r.Get("/produtos", catalogHandler.ListProducts)
		r.Post("/produtos", catalogHandler.CreateProduct)
		r.Get("/embalagens", packagingHandler.ListPackagings)
		r.Post("/embalagens", packagingHandler.CreatePackaging)
		r.Post("/embalagens/editar", packagingHandler.UpdateStock)
		r.Get("/dashboard", reportHandler.GetDashboard)
		r.Get("/pedidos", reportHandler.ListOrders)

		// Cart and order entry (session-scoped)
		r.Route("/carrinho", func(r chi.Router) {
			r.Use(middleware.Sessions(sessions, cfg.Session))

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/itens", cartHandler.AddItem)
			r.Put("/itens/{idx}", cartHandler.UpdateItem)
			r.Delete("/itens/{idx}", cartHandler.RemoveItem)
			r.Put("/cliente", cartHandler.UpdateCustomer)
			r.Post("/finalizar", cartHandler.Finalize)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	mcpDelivery "github.com/pricelens/backend/internal/delivery/mcp"
	"github.com/pricelens/backend/internal/infrastructure/serper"
	"github.com/pricelens/backend/internal/metrics"
	"github.com/pricelens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	serperClient := serper.NewClient(cfg.Serper.APIKey, cfg.Serper.BaseURL, serper.Options{
		Country:   cfg.Serper.Country,
		Language:  cfg.Serper.Language,
		PerSecond: cfg.RateLimit.SerperPerSecond,
		Burst:     cfg.RateLimit.SerperBurst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		serperClient.SetDebug(true)
		log.Printf("Serper client debug mode enabled")
	}

	log.Printf("Serper API configured: %s (region: %s, key: %s...)",
		cfg.Serper.BaseURL, cfg.Serper.Country, cfg.Serper.APIKey[:min(8, len(cfg.Serper.APIKey))])

	// Initialize usecase layer
	m := metrics.New()
	authService := usecase.NewAuthService(cfg.Auth.Token, cfg.Auth.OwnerNumber)
	priceService := usecase.NewPriceService(serperClient, m)

	// MCP tool server
	mcpServer := mcpDelivery.NewServer(authService, priceService, m)

	// HTTP surface: health, metrics, and the MCP mount
	handler := httpDelivery.NewHandler(authService, cfg.Auth.Token)
	router := httpDelivery.SetupRouter(cfg, handler, mcpServer.HTTPHandler(), m.Registry)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s (MCP endpoint: /mcp)", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

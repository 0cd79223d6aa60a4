package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/smartmall/backend/config"
	httpDelivery "github.com/smartmall/backend/internal/delivery/http"
	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/catalog"
	"github.com/smartmall/backend/internal/infrastructure/seed"
	"github.com/smartmall/backend/internal/infrastructure/store"
	"github.com/smartmall/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SmartMall Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize infrastructure dependencies
	var kv domain.KeyValueStore
	switch cfg.Store.Type {
	case "sqlite":
		sqliteStore, err := store.OpenSQLite(cfg.Store.DataDir)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		defer sqliteStore.Close()
		kv = sqliteStore
		log.Printf("SQLite store at %s", cfg.Store.DataDir)
	default:
		kv = store.NewMemoryStore()
		log.Printf("In-memory store (state is lost on restart)")
	}

	cat := catalog.New()
	clock := usecase.SystemClock()

	seedValue := cfg.Seed.Value
	if seedValue == 0 {
		seedValue = clock.Now().UnixNano()
	}
	// rand.Rand is not safe for concurrent use, so each service that draws
	// randomness gets its own source derived from the seed.
	insightsRNG := rand.New(rand.NewSource(seedValue))
	scanRNG := rand.New(rand.NewSource(seedValue + 1))
	seeder := seed.NewProvider(cat, insightsRNG)

	// Initialize usecase layer
	cart := usecase.NewCartService()
	budget := usecase.NewBudgetService(kv, clock)
	insights := usecase.NewInsightsService(kv, cat, seeder, clock, insightsRNG)
	list := usecase.NewShoppingListService(kv, cat)
	auth := usecase.NewAuthService(kv, clock)
	checkout := usecase.NewCheckoutService(
		kv, cat, cart, budget, insights, auth, list, clock, scanRNG,
		cfg.Scan.ReadDelay, cfg.Scan.ProcessingDelay,
	)

	// First run populates demo spending history and price alerts
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := insights.EnsureSeeded(seedCtx); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("Catalog: %d products, %d payment methods", len(cat.All()), len(cat.PaymentMethods()))
	log.Printf("Scan delays: read=%s processing=%s", cfg.Scan.ReadDelay, cfg.Scan.ProcessingDelay)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(cat, cart, budget, insights, list, auth, checkout)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}

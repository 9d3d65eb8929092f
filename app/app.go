package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"dressing-calculator/app/controller"
	"dressing-calculator/app/router"
	"dressing-calculator/db"
	"dressing-calculator/pricing"
	"dressing-calculator/repository"
	"dressing-calculator/service"
)

// LoadTariff picks the price list source. With a database configured the
// stored tariff wins, seeded from the JSON file (or the built-in tariff) on
// first start. Without one, the JSON file is used when set, else the built-in
// tariff.
func LoadTariff(ctx context.Context, cfg Config, repo repository.TariffRepositoryInterface) (*pricing.Tariff, error) {
	seed := pricing.DefaultTariff()
	if cfg.PricingConfig != "" {
		fileTariff, err := pricing.LoadTariff(cfg.PricingConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing config: %w", err)
		}
		seed = fileTariff
	}

	if cfg.DatabaseURL == "" {
		if cfg.PricingConfig == "" {
			log.Printf("⚠️  Tariff: no database or PRICING_CONFIG set, using built-in price list")
		}
		return seed, nil
	}

	if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	tariff, err := repo.LoadOrSeed(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to load tariff from database: %w", err)
	}
	return tariff, nil
}

// Initialize initializes the application and registers its routes on mux
func Initialize(ctx context.Context, cfg Config, mux *http.ServeMux) error {
	tariff, err := LoadTariff(ctx, cfg, repository.NewTariffRepository())
	if err != nil {
		return err
	}

	engine, err := pricing.NewEngine(tariff)
	if err != nil {
		return err
	}
	log.Printf("💰 Pricing engine ready: %d transport zones, currency %s", len(tariff.Zones), tariff.Currency)

	printer := service.NewQuotePrinter(cfg.BaseURL)

	// Create controllers
	controllers := &router.Controllers{
		Calculator: controller.NewCalculatorController(engine),
		Tariff:     controller.NewTariffController(engine),
		Quote:      controller.NewQuoteController(engine, printer),
	}

	// Setup routes using standard http router
	router.SetupRoutes(mux, controllers)

	return nil
}

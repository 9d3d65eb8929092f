package repository

import (
	"context"

	"dressing-calculator/pricing"
)

// TariffRepositoryInterface defines the contract for price list storage
type TariffRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context) (*pricing.Tariff, error)
	Save(ctx context.Context, tariff *pricing.Tariff) error
	LoadOrSeed(ctx context.Context, seed *pricing.Tariff) (*pricing.Tariff, error)
}

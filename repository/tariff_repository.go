package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"dressing-calculator/db"
	"dressing-calculator/pricing"
)

// ErrTariffNotFound is returned when the settings row has never been written
var ErrTariffNotFound = errors.New("tariff not found")

// TariffRepository stores the price list in PostgreSQL
type TariffRepository struct{}

// NewTariffRepository creates a new TariffRepository
func NewTariffRepository() *TariffRepository {
	return &TariffRepository{}
}

// Ensure TariffRepository implements TariffRepositoryInterface
var _ TariffRepositoryInterface = (*TariffRepository)(nil)

const tariffSchema = `
CREATE TABLE IF NOT EXISTS tariff_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	currency TEXT NOT NULL,
	facade_rate_with DOUBLE PRECISION NOT NULL,
	facade_rate_without DOUBLE PRECISION NOT NULL,
	surcharge_rate DOUBLE PRECISION NOT NULL,
	tax_multiplier DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS slide_prices (
	slide_type TEXT PRIMARY KEY,
	unit_price DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS transport_zones (
	code TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	fee DOUBLE PRECISION NOT NULL,
	position INTEGER NOT NULL
);
`

// EnsureSchema creates the tariff tables when they are missing
func (r *TariffRepository) EnsureSchema(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, tariffSchema); err != nil {
		return fmt.Errorf("failed to create tariff tables: %w", err)
	}
	return nil
}

// Load reads the full price list
func (r *TariffRepository) Load(ctx context.Context) (*pricing.Tariff, error) {
	tariff := &pricing.Tariff{
		SlidePrices: make(map[pricing.SlideType]float64),
	}

	querySettings := `
		SELECT currency, facade_rate_with, facade_rate_without, surcharge_rate, tax_multiplier
		FROM tariff_settings
		WHERE id = 1
	`
	err := db.DB.QueryRowContext(ctx, querySettings).Scan(
		&tariff.Currency,
		&tariff.FacadeRates.With,
		&tariff.FacadeRates.Without,
		&tariff.SurchargeRate,
		&tariff.TaxMultiplier,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff settings: %w", err)
	}

	slideRows, err := db.DB.QueryContext(ctx, `SELECT slide_type, unit_price FROM slide_prices`)
	if err != nil {
		return nil, fmt.Errorf("failed to read slide prices: %w", err)
	}
	defer slideRows.Close()

	for slideRows.Next() {
		var name string
		var price float64
		if err := slideRows.Scan(&name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan slide price: %w", err)
		}
		slideType, err := pricing.ParseSlideType(name)
		if err != nil {
			log.Printf("⚠️  Tariff: ignoring slide price row %q: %v", name, err)
			continue
		}
		tariff.SlidePrices[slideType] = price
	}
	if err := slideRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read slide prices: %w", err)
	}

	zoneRows, err := db.DB.QueryContext(ctx, `SELECT code, label, fee FROM transport_zones ORDER BY position ASC, code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read transport zones: %w", err)
	}
	defer zoneRows.Close()

	for zoneRows.Next() {
		var zone pricing.Zone
		var code string
		if err := zoneRows.Scan(&code, &zone.Label, &zone.Fee); err != nil {
			return nil, fmt.Errorf("failed to scan transport zone: %w", err)
		}
		zone.ID = pricing.ZoneID(code)
		tariff.Zones = append(tariff.Zones, zone)
	}
	if err := zoneRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transport zones: %w", err)
	}

	if err := pricing.ValidateTariff(tariff); err != nil {
		return nil, fmt.Errorf("invalid tariff in database: %w", err)
	}

	log.Printf("✅ Tariff: loaded %d zones from database", len(tariff.Zones))
	return tariff, nil
}

// Save replaces the stored price list in one transaction
func (r *TariffRepository) Save(ctx context.Context, tariff *pricing.Tariff) error {
	if err := pricing.ValidateTariff(tariff); err != nil {
		return fmt.Errorf("invalid tariff: %w", err)
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	querySettings := `
		INSERT INTO tariff_settings (id, currency, facade_rate_with, facade_rate_without, surcharge_rate, tax_multiplier, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			currency = EXCLUDED.currency,
			facade_rate_with = EXCLUDED.facade_rate_with,
			facade_rate_without = EXCLUDED.facade_rate_without,
			surcharge_rate = EXCLUDED.surcharge_rate,
			tax_multiplier = EXCLUDED.tax_multiplier,
			updated_at = now()
	`
	if _, err := tx.ExecContext(ctx, querySettings,
		tariff.Currency,
		tariff.FacadeRates.With,
		tariff.FacadeRates.Without,
		tariff.SurchargeRate,
		tariff.TaxMultiplier,
	); err != nil {
		return fmt.Errorf("failed to save tariff settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slide_prices`); err != nil {
		return fmt.Errorf("failed to clear slide prices: %w", err)
	}
	for slideType, price := range tariff.SlidePrices {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO slide_prices (slide_type, unit_price) VALUES ($1, $2)`,
			slideType.String(), price,
		); err != nil {
			return fmt.Errorf("failed to save slide price %s: %w", slideType, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transport_zones`); err != nil {
		return fmt.Errorf("failed to clear transport zones: %w", err)
	}
	for i, zone := range tariff.Zones {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transport_zones (code, label, fee, position) VALUES ($1, $2, $3, $4)`,
			string(zone.ID), zone.Label, zone.Fee, i,
		); err != nil {
			return fmt.Errorf("failed to save transport zone %s: %w", zone.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tariff: %w", err)
	}

	log.Printf("✅ Tariff: saved %d zones to database", len(tariff.Zones))
	return nil
}

// LoadOrSeed returns the stored price list, writing seed first when the
// database has none.
func (r *TariffRepository) LoadOrSeed(ctx context.Context, seed *pricing.Tariff) (*pricing.Tariff, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	tariff, err := r.Load(ctx)
	if errors.Is(err, ErrTariffNotFound) {
		log.Printf("⚠️  Tariff: database is empty, seeding the default price list")
		if err := r.Save(ctx, seed); err != nil {
			return nil, err
		}
		return r.Load(ctx)
	}
	return tariff, err
}

package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// SlideType is the drawer-slide hardware family
type SlideType int

const (
	SlideScala SlideType = iota
	SlideMetabox
)

// SlideTypes lists every slide type in display order
var SlideTypes = []SlideType{SlideScala, SlideMetabox}

func (s SlideType) String() string {
	switch s {
	case SlideScala:
		return "scala"
	case SlideMetabox:
		return "metabox"
	}
	return fmt.Sprintf("SlideType(%d)", int(s))
}

// Label returns the display name ("Scala", "Metabox")
func (s SlideType) Label() string {
	switch s {
	case SlideScala:
		return "Scala"
	case SlideMetabox:
		return "Metabox"
	}
	return s.String()
}

// ParseSlideType accepts "scala" or "metabox" (case-insensitive)
func ParseSlideType(value string) (SlideType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "scala":
		return SlideScala, nil
	case "metabox":
		return SlideMetabox, nil
	}
	return 0, fmt.Errorf("unknown slide type %q", value)
}

func (s SlideType) MarshalText() ([]byte, error) {
	if s != SlideScala && s != SlideMetabox {
		return nil, fmt.Errorf("unknown slide type %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *SlideType) UnmarshalText(text []byte) error {
	parsed, err := ParseSlideType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ZoneID identifies a delivery zone. The set of valid ids is the tariff's zone table.
type ZoneID string

// Zone is one row of the transport table
type Zone struct {
	ID    ZoneID  `json:"id"`
	Label string  `json:"label"`
	Fee   float64 `json:"fee"`
}

// FacadeRates is the per-m² material rate T
type FacadeRates struct {
	With    float64 `json:"with"`
	Without float64 `json:"without"`
}

// Tariff holds every lookup table the engine reads
type Tariff struct {
	Currency      string                `json:"currency"`
	FacadeRates   FacadeRates           `json:"facadeRates"`
	SlidePrices   map[SlideType]float64 `json:"slidePrices"`
	Zones         []Zone                `json:"zones"`
	SurchargeRate float64               `json:"surchargeRate"` // finishing cost per m², never discounted
	TaxMultiplier float64               `json:"taxMultiplier"`
}

// DefaultTariff returns the workshop's reference price list
func DefaultTariff() *Tariff {
	return &Tariff{
		Currency: "DT",
		FacadeRates: FacadeRates{
			With:    450,
			Without: 360,
		},
		SlidePrices: map[SlideType]float64{
			SlideScala:   100,
			SlideMetabox: 30,
		},
		Zones: []Zone{
			{ID: "tunis", Label: "Transport Tunis", Fee: 127.5},
			{ID: "capbon", Label: "Transport Capbon", Fee: 292.5},
			{ID: "sousse", Label: "Transport Sousse", Fee: 420},
			{ID: "djerba", Label: "Transport Djerba", Fee: 1005},
		},
		SurchargeRate: 30,
		TaxMultiplier: 1.19,
	}
}

// RateFor returns T for the facade option
func (t *Tariff) RateFor(hasFacade bool) float64 {
	if hasFacade {
		return t.FacadeRates.With
	}
	return t.FacadeRates.Without
}

// PriceFor returns the unit price of one slide
func (t *Tariff) PriceFor(slideType SlideType) float64 {
	return t.SlidePrices[slideType]
}

// Zone looks up a delivery zone by id
func (t *Tariff) Zone(id ZoneID) (Zone, bool) {
	for _, z := range t.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// DefaultZone returns the first zone of the table
func (t *Tariff) DefaultZone() Zone {
	if len(t.Zones) == 0 {
		return Zone{}
	}
	return t.Zones[0]
}

// LoadTariff reads a JSON price list from disk and validates it
func LoadTariff(configPath string) (*Tariff, error) {
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tariff config: %w", err)
	}

	tariff, err := ParseTariff(data)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Tariff: loaded %d zones from %s", len(tariff.Zones), configPath)
	return tariff, nil
}

// ParseTariff decodes and validates a JSON price list
func ParseTariff(data []byte) (*Tariff, error) {
	var tariff Tariff
	if err := json.Unmarshal(data, &tariff); err != nil {
		return nil, fmt.Errorf("failed to parse tariff config: %w", err)
	}
	if err := ValidateTariff(&tariff); err != nil {
		return nil, fmt.Errorf("invalid tariff config: %w", err)
	}
	return &tariff, nil
}

// ValidateTariff checks that every table the formula reads is present and sane
func ValidateTariff(t *Tariff) error {
	if t.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if t.FacadeRates.With <= 0 || t.FacadeRates.Without <= 0 {
		return fmt.Errorf("facade rates must be greater than 0")
	}
	for _, st := range SlideTypes {
		price, ok := t.SlidePrices[st]
		if !ok {
			return fmt.Errorf("slide price for %s is required", st)
		}
		if price < 0 {
			return fmt.Errorf("slide price for %s must not be negative", st)
		}
	}
	if len(t.Zones) == 0 {
		return fmt.Errorf("zones are required")
	}
	seen := make(map[ZoneID]bool, len(t.Zones))
	for _, z := range t.Zones {
		if z.ID == "" {
			return fmt.Errorf("zone id is required")
		}
		if seen[z.ID] {
			return fmt.Errorf("duplicate zone %q", z.ID)
		}
		seen[z.ID] = true
		if z.Fee < 0 {
			return fmt.Errorf("fee for zone %q must not be negative", z.ID)
		}
	}
	if t.SurchargeRate < 0 {
		return fmt.Errorf("surcharge rate must not be negative")
	}
	if t.TaxMultiplier < 1 {
		return fmt.Errorf("tax multiplier must be at least 1")
	}
	return nil
}

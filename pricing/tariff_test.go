package pricing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseSlideType(t *testing.T) {
	tests := []struct {
		input   string
		expect  SlideType
		wantErr bool
	}{
		{"scala", SlideScala, false},
		{"Metabox", SlideMetabox, false},
		{"  SCALA ", SlideScala, false},
		{"blum", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlideType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSlideType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expect {
				t.Errorf("ParseSlideType(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestDefaultTariff_Tables(t *testing.T) {
	tariff := DefaultTariff()
	if err := ValidateTariff(tariff); err != nil {
		t.Fatalf("ValidateTariff(DefaultTariff()) error = %v", err)
	}

	if got := tariff.RateFor(true); got != 450 {
		t.Errorf("RateFor(true) = %v, want 450", got)
	}
	if got := tariff.RateFor(false); got != 360 {
		t.Errorf("RateFor(false) = %v, want 360", got)
	}
	if got := tariff.PriceFor(SlideScala); got != 100 {
		t.Errorf("PriceFor(Scala) = %v, want 100", got)
	}
	if got := tariff.PriceFor(SlideMetabox); got != 30 {
		t.Errorf("PriceFor(Metabox) = %v, want 30", got)
	}

	fees := map[ZoneID]float64{"tunis": 127.5, "capbon": 292.5, "sousse": 420, "djerba": 1005}
	for id, fee := range fees {
		z, ok := tariff.Zone(id)
		if !ok {
			t.Errorf("Zone(%q) not found", id)
			continue
		}
		if z.Fee != fee {
			t.Errorf("Zone(%q).Fee = %v, want %v", id, z.Fee, fee)
		}
	}
	if tariff.DefaultZone().ID != "tunis" {
		t.Errorf("DefaultZone() = %q, want tunis", tariff.DefaultZone().ID)
	}
}

func TestTariff_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(DefaultTariff())
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"scala":100`) {
		t.Errorf("slide prices not keyed by name: %s", data)
	}

	parsed, err := ParseTariff(data)
	if err != nil {
		t.Fatalf("ParseTariff() error = %v", err)
	}
	if parsed.PriceFor(SlideMetabox) != 30 {
		t.Errorf("parsed Metabox price = %v, want 30", parsed.PriceFor(SlideMetabox))
	}
	if len(parsed.Zones) != 4 {
		t.Errorf("parsed zones = %d, want 4", len(parsed.Zones))
	}
}

func TestValidateTariff(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tariff)
		errSub string
	}{
		{"missing currency", func(tr *Tariff) { tr.Currency = "" }, "currency"},
		{"zero facade rate", func(tr *Tariff) { tr.FacadeRates.Without = 0 }, "facade"},
		{"missing slide price", func(tr *Tariff) { delete(tr.SlidePrices, SlideMetabox) }, "metabox"},
		{"no zones", func(tr *Tariff) { tr.Zones = nil }, "zones"},
		{"duplicate zone", func(tr *Tariff) { tr.Zones = append(tr.Zones, Zone{ID: "tunis", Fee: 1}) }, "duplicate"},
		{"negative fee", func(tr *Tariff) { tr.Zones[1].Fee = -3 }, "fee"},
		{"tax below one", func(tr *Tariff) { tr.TaxMultiplier = 0.19 }, "tax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tariff := DefaultTariff()
			tt.mutate(tariff)
			err := ValidateTariff(tariff)
			if err == nil {
				t.Fatal("ValidateTariff() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("ValidateTariff() error = %q, want it to mention %q", err, tt.errSub)
			}
		})
	}
}

func TestLoadTariff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tariff.json")
	config := `{
		"currency": "DT",
		"facadeRates": {"with": 500, "without": 400},
		"slidePrices": {"scala": 110, "metabox": 35},
		"zones": [{"id": "tunis", "label": "Transport Tunis", "fee": 150}],
		"surchargeRate": 30,
		"taxMultiplier": 1.19
	}`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tariff, err := LoadTariff(path)
	if err != nil {
		t.Fatalf("LoadTariff() error = %v", err)
	}
	if tariff.RateFor(true) != 500 || tariff.PriceFor(SlideScala) != 110 {
		t.Errorf("LoadTariff() tables = %+v", tariff)
	}

	if _, err := LoadTariff(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadTariff() on missing file error = nil, want error")
	}
}

func TestLoadTariff_SampleConfigMatchesDefault(t *testing.T) {
	tariff, err := LoadTariff(filepath.Join("..", "config", "tariff.json"))
	if err != nil {
		t.Fatalf("LoadTariff() error = %v", err)
	}
	if !reflect.DeepEqual(tariff, DefaultTariff()) {
		t.Errorf("config/tariff.json = %+v, want DefaultTariff()", tariff)
	}
}

package controller

import (
	"log"
	"math"
	"net/http"

	"dressing-calculator/models"
	"dressing-calculator/pricing"
)

// TariffController serves the price sheet
type TariffController struct {
	engine *pricing.Engine
}

// NewTariffController creates a new TariffController
func NewTariffController(engine *pricing.Engine) *TariffController {
	return &TariffController{
		engine: engine,
	}
}

// GetTariff handles GET /api/tariff
func (c *TariffController) GetTariff(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetTariff: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetTariff: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, tariffResponse(c.engine.Tariff()))
}

func tariffResponse(t *pricing.Tariff) models.TariffResponse {
	resp := models.TariffResponse{
		Currency: t.Currency,
		FacadeRates: map[string]float64{
			"with":    t.FacadeRates.With,
			"without": t.FacadeRates.Without,
		},
		SlideTypes:     make([]models.OptionItem, 0, len(pricing.SlideTypes)),
		TransportZones: make([]models.OptionItem, 0, len(t.Zones)),
		SurchargeRate:  t.SurchargeRate,
		TaxPercent:     math.Round((t.TaxMultiplier-1)*10000) / 100,
	}
	for _, slideType := range pricing.SlideTypes {
		resp.SlideTypes = append(resp.SlideTypes, models.OptionItem{
			Label: slideType.Label(),
			Value: slideType.String(),
			Price: t.PriceFor(slideType),
		})
	}
	for _, zone := range t.Zones {
		resp.TransportZones = append(resp.TransportZones, models.OptionItem{
			Label: zone.Label,
			Value: string(zone.ID),
			Price: zone.Fee,
		})
	}
	return resp
}

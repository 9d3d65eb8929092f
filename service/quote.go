package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dressing-calculator/form"
	"dressing-calculator/pricing"
	"dressing-calculator/utils"
)

// ErrNotCalculated is returned when a quote is requested for a form that has
// no price yet
var ErrNotCalculated = errors.New("form is not calculated")

// QuoteLine is one row of the calculation details
type QuoteLine struct {
	Label  string
	Detail string
	Amount float64
}

// Quote holds everything printed on a quote document
type Quote struct {
	Title       string
	Reference   string
	CreatedDate string
	Currency    string
	Input       pricing.CalculationInput
	Breakdown   pricing.PriceBreakdown
	Options     string // "Avec chambranle, avec façade"
	ZoneLabel   string
	TaxLabel    string // "TVA (19%)"
	Lines       []QuoteLine
}

// NewQuote builds a quote from a calculated form state
func NewQuote(tariff *pricing.Tariff, state *form.State, now time.Time) (*Quote, error) {
	if state == nil || !state.Calculated() {
		return nil, ErrNotCalculated
	}

	input := state.Input
	breakdown := *state.Breakdown

	zoneLabel := string(input.TransportZone)
	if zone, ok := tariff.Zone(input.TransportZone); ok {
		zoneLabel = zone.Label
	}

	options := "Sans chambranle"
	if input.HasChambranle {
		options = "Avec chambranle"
	}
	if input.HasFacade {
		options += ", avec façade"
	} else {
		options += ", sans façade"
	}

	taxRate := math.Round((tariff.TaxMultiplier-1)*10000) / 100
	taxLabel := fmt.Sprintf("TVA (%s)", utils.FormatPercent(taxRate))
	unitPrice := tariff.PriceFor(input.SlideType)

	q := &Quote{
		Title:       "Devis Dressing",
		Reference:   "DEV-" + now.Format("20060102-1504"),
		CreatedDate: now.Format("02/01/2006"),
		Currency:    tariff.Currency,
		Input:       input,
		Breakdown:   breakdown,
		Options:     options,
		ZoneLabel:   zoneLabel,
		TaxLabel:    taxLabel,
	}

	q.Lines = []QuoteLine{
		{
			Label:  "Surface",
			Detail: fmt.Sprintf("%s × %s m, %s", formatMeters(input.Width), formatMeters(input.Height), utils.FormatArea(breakdown.Area)),
			Amount: breakdown.BaseMaterialCost,
		},
		{
			Label:  "Coulisses",
			Detail: fmt.Sprintf("%d × %s (%s chacune)", input.SlideCount, input.SlideType.Label(), utils.FormatAmount(unitPrice, tariff.Currency)),
			Amount: breakdown.SlidesCost,
		},
	}
	if breakdown.DiscountAmount > 0 {
		q.Lines = append(q.Lines, QuoteLine{
			Label:  "Remise",
			Detail: utils.FormatPercent(input.DiscountPercent),
			Amount: -breakdown.DiscountAmount,
		})
	}
	q.Lines = append(q.Lines,
		QuoteLine{
			Label:  "Finition",
			Detail: fmt.Sprintf("%s par m²", utils.FormatAmount(tariff.SurchargeRate, tariff.Currency)),
			Amount: breakdown.Surcharge,
		},
		QuoteLine{
			Label:  "Transport",
			Detail: zoneLabel,
			Amount: breakdown.TransportFee,
		},
		QuoteLine{
			Label:  taxLabel,
			Detail: "Incluse",
			Amount: breakdown.TaxAmount,
		},
	)

	return q, nil
}

// FormatAmount formats an amount in the quote currency
func (q *Quote) FormatAmount(amount float64) string {
	return utils.FormatAmount(amount, q.Currency)
}

// Total is the formatted tax-inclusive price
func (q *Quote) Total() string {
	return q.FormatAmount(q.Breakdown.TotalPrice)
}

func formatMeters(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Package pricing computes the tax-inclusive price of a dressing from its
// dimensions and options. Every function here is pure; rate tables come from
// a Tariff so zones and prices can change without touching the formula.
package pricing

import (
	"fmt"
	"math"
)

// chambranleAllowance is the extra material the door-frame surround takes in
// each dimension, in meters.
const chambranleAllowance = 0.1

// CalculationInput is one validated set of form values
type CalculationInput struct {
	Width           float64   `json:"width"`
	Height          float64   `json:"height"`
	HasChambranle   bool      `json:"hasChambranle"`
	HasFacade       bool      `json:"hasFacade"`
	SlideType       SlideType `json:"slideType"`
	SlideCount      int       `json:"slideCount"`
	TransportZone   ZoneID    `json:"transportZone"`
	DiscountPercent float64   `json:"discountPercent"`
}

// PriceBreakdown is the result of one computation. It is never modified after
// Compute returns it.
type PriceBreakdown struct {
	Area             float64 `json:"area"`             // m²
	BaseMaterialCost float64 `json:"baseMaterialCost"` // area × T
	SlidesCost       float64 `json:"slidesCost"`       // slideCount × unit price
	DiscountAmount   float64 `json:"discountAmount"`   // on material + slides only
	Surcharge        float64 `json:"surcharge"`        // area × surcharge rate
	TransportFee     float64 `json:"transportFee"`
	TaxAmount        float64 `json:"taxAmount"`
	TotalPrice       float64 `json:"totalPrice"` // tax included
}

// Engine evaluates the pricing formula against one tariff
type Engine struct {
	tariff *Tariff
}

// NewEngine creates an engine for a validated tariff. A nil tariff selects
// DefaultTariff.
func NewEngine(tariff *Tariff) (*Engine, error) {
	if tariff == nil {
		tariff = DefaultTariff()
	}
	if err := ValidateTariff(tariff); err != nil {
		return nil, fmt.Errorf("invalid tariff: %w", err)
	}
	return &Engine{tariff: tariff}, nil
}

// Tariff returns the tables the engine prices with
func (e *Engine) Tariff() *Tariff {
	return e.tariff
}

// ComputeArea returns the billed surface in m²
func ComputeArea(width, height float64, hasChambranle bool) float64 {
	if hasChambranle {
		return (width + chambranleAllowance) * (height + chambranleAllowance)
	}
	return width * height
}

// ComputeDiscountAmount applies discountPercent to the material and slides
// price. Transport and surcharge are never discounted.
func (e *Engine) ComputeDiscountAmount(area float64, hasFacade bool, slideType SlideType, slideCount int, discountPercent float64) float64 {
	t := e.tariff.RateFor(hasFacade)
	unitSlide := e.tariff.PriceFor(slideType)

	basePrice := area*t + unitSlide*float64(slideCount)
	return basePrice * (discountPercent / 100)
}

// ComputeTotalPrice returns the tax-inclusive price. The tax multiplier is
// applied to the discounted core and to surcharge+transport separately.
// Input is not validated: an unknown zone adds no transport fee, so callers
// outside Compute should run Validate first.
func (e *Engine) ComputeTotalPrice(input CalculationInput, discountAmount float64) float64 {
	t := e.tariff.RateFor(input.HasFacade)
	unitSlide := e.tariff.PriceFor(input.SlideType)
	area := ComputeArea(input.Width, input.Height, input.HasChambranle)
	if math.IsNaN(area) || area < 0 {
		area = 0
	}

	zone, _ := e.tariff.Zone(input.TransportZone)
	tax := e.tariff.TaxMultiplier

	core := (area*t + unitSlide*float64(input.SlideCount)) - discountAmount
	surcharge := area * e.tariff.SurchargeRate

	return core*tax + (surcharge+zone.Fee)*tax
}

// Validate checks the invariants of a CalculationInput
func (e *Engine) Validate(input CalculationInput) error {
	if !(input.Width > 0) {
		return newValidationError(NonPositive, FieldWidth)
	}
	if math.IsInf(input.Width, 1) {
		return newValidationError(OutOfRange, FieldWidth)
	}
	if !(input.Height > 0) {
		return newValidationError(NonPositive, FieldHeight)
	}
	if math.IsInf(input.Height, 1) {
		return newValidationError(OutOfRange, FieldHeight)
	}
	if input.SlideCount < 0 {
		return newValidationError(NegativeCount, FieldSlideCount)
	}
	if math.IsNaN(input.DiscountPercent) || input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return newValidationError(OutOfRange, FieldDiscountPercent)
	}
	if _, ok := e.tariff.SlidePrices[input.SlideType]; !ok {
		return newValidationError(UnknownOption, FieldSlideType)
	}
	if _, ok := e.tariff.Zone(input.TransportZone); !ok {
		return newValidationError(UnknownOption, FieldTransportZone)
	}
	return nil
}

// Compute validates input and returns the full breakdown. The returned error
// is always a *ValidationError.
func (e *Engine) Compute(input CalculationInput) (PriceBreakdown, error) {
	if err := e.Validate(input); err != nil {
		return PriceBreakdown{}, err
	}

	area := ComputeArea(input.Width, input.Height, input.HasChambranle)
	discount := e.ComputeDiscountAmount(area, input.HasFacade, input.SlideType, input.SlideCount, input.DiscountPercent)
	total := e.ComputeTotalPrice(input, discount)
	zone, _ := e.tariff.Zone(input.TransportZone)

	breakdown := PriceBreakdown{
		Area:             area,
		BaseMaterialCost: area * e.tariff.RateFor(input.HasFacade),
		SlidesCost:       e.tariff.PriceFor(input.SlideType) * float64(input.SlideCount),
		DiscountAmount:   discount,
		Surcharge:        area * e.tariff.SurchargeRate,
		TransportFee:     zone.Fee,
		TotalPrice:       total,
	}
	breakdown.TaxAmount = total - (breakdown.BaseMaterialCost + breakdown.SlidesCost - discount + breakdown.Surcharge + breakdown.TransportFee)

	// dimensions whose product overflows float64
	if !breakdown.finite() {
		field := FieldWidth
		if input.Height > input.Width {
			field = FieldHeight
		}
		return PriceBreakdown{}, newValidationError(OutOfRange, field)
	}
	return breakdown, nil
}

func (b PriceBreakdown) finite() bool {
	for _, v := range []float64{b.Area, b.BaseMaterialCost, b.SlidesCost, b.DiscountAmount, b.Surcharge, b.TransportFee, b.TaxAmount, b.TotalPrice} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

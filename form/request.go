package form

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dressing-calculator/models"
	"dressing-calculator/pricing"
	"dressing-calculator/utils"
)

// FieldsFromRequest overlays a request on top of defaults. Numeric text goes
// through the same sanitising as the setters.
func FieldsFromRequest(req models.CalculateRequest, defaults Fields) (Fields, error) {
	fields := defaults
	fields.Width = req.Width
	fields.Height = req.Height
	fields.SlideCount = req.SlideCount
	fields.Discount = req.DiscountPercent

	if req.HasChambranle != nil {
		fields.HasChambranle = *req.HasChambranle
	}
	if req.HasFacade != nil {
		fields.HasFacade = *req.HasFacade
	}
	if strings.TrimSpace(req.SlideType) != "" {
		slideType, err := pricing.ParseSlideType(req.SlideType)
		if err != nil {
			return Fields{}, &pricing.ValidationError{Kind: pricing.UnknownOption, Field: pricing.FieldSlideType}
		}
		fields.SlideType = slideType
	}
	if zone := strings.TrimSpace(req.TransportZone); zone != "" {
		fields.TransportZone = pricing.ZoneID(strings.ToLower(zone))
	}

	for _, field := range []Field{FieldWidth, FieldHeight, FieldSlideCount, FieldDiscount} {
		p := fields.text(field)
		sanitized, err := Sanitize(*p, numericSpecs[field])
		if err != nil {
			return Fields{}, fmt.Errorf("%s %q: %w", field, *p, err)
		}
		*p = sanitized
	}
	return fields, nil
}

// EvaluateRequest prices a request against the default form. Option errors
// come back as an Invalid state; only rejected text is returned as an error.
func EvaluateRequest(engine *pricing.Engine, req models.CalculateRequest) (State, error) {
	fields, err := FieldsFromRequest(req, DefaultFields(engine.Tariff()))
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		return State{Fields: fields, Status: StatusInvalid, Err: verr}, nil
	}
	if err != nil {
		return State{}, err
	}
	return Evaluate(engine, fields), nil
}

// Response renders the state for the JSON API
func (s *State) Response(currency string) models.CalculateResponse {
	resp := models.CalculateResponse{
		Status:   s.Status.String(),
		Currency: currency,
	}
	if errs := s.ErrorMessages(); len(errs) > 0 {
		resp.Errors = errs
	}
	if s.Calculated() {
		input := s.Input
		breakdown := *s.Breakdown
		resp.Input = &input
		resp.Breakdown = &breakdown
		resp.Formatted = map[string]string{
			"area":             utils.FormatArea(breakdown.Area),
			"baseMaterialCost": utils.FormatAmount(breakdown.BaseMaterialCost, currency),
			"slidesCost":       utils.FormatAmount(breakdown.SlidesCost, currency),
			"discountAmount":   utils.FormatAmount(breakdown.DiscountAmount, currency),
			"surcharge":        utils.FormatAmount(breakdown.Surcharge, currency),
			"transportFee":     utils.FormatAmount(breakdown.TransportFee, currency),
			"taxAmount":        utils.FormatAmount(breakdown.TaxAmount, currency),
			"totalPrice":       utils.FormatAmount(breakdown.TotalPrice, currency),
		}
	}
	return resp
}

// RequestFromValues reads a request from query parameters, as sent to the
// printable quote page. Missing or malformed booleans keep the defaults.
func RequestFromValues(values url.Values) models.CalculateRequest {
	req := models.CalculateRequest{
		Width:           values.Get("width"),
		Height:          values.Get("height"),
		SlideType:       values.Get("slideType"),
		SlideCount:      values.Get("slideCount"),
		TransportZone:   values.Get("transportZone"),
		DiscountPercent: values.Get("discountPercent"),
	}
	if b, err := strconv.ParseBool(values.Get("hasChambranle")); err == nil {
		req.HasChambranle = &b
	}
	if b, err := strconv.ParseBool(values.Get("hasFacade")); err == nil {
		req.HasFacade = &b
	}
	return req
}

// Values encodes the fields as query parameters for RequestFromValues
func (f Fields) Values() url.Values {
	return url.Values{
		"width":           {f.Width},
		"height":          {f.Height},
		"hasChambranle":   {strconv.FormatBool(f.HasChambranle)},
		"hasFacade":       {strconv.FormatBool(f.HasFacade)},
		"slideType":       {f.SlideType.String()},
		"slideCount":      {f.SlideCount},
		"transportZone":   {string(f.TransportZone)},
		"discountPercent": {f.Discount},
	}
}

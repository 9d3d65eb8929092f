package models

import "dressing-calculator/pricing"

// CalculateRequest is the raw form content, sent as typed by the user.
// Numeric fields are text so that "2,5" and "" behave as they do in the form.
// Example: {
//   "width": "2",
//   "height": "2",
//   "hasChambranle": true,
//   "hasFacade": true,
//   "slideType": "scala",
//   "slideCount": "2",
//   "transportZone": "tunis",
//   "discountPercent": "10"
// }
type CalculateRequest struct {
	Width           string `json:"width"`
	Height          string `json:"height"`
	HasChambranle   *bool  `json:"hasChambranle,omitempty"`   // defaults to true
	HasFacade       *bool  `json:"hasFacade,omitempty"`       // defaults to true
	SlideType       string `json:"slideType,omitempty"`       // "scala" (default) or "metabox"
	SlideCount      string `json:"slideCount"`
	TransportZone   string `json:"transportZone,omitempty"`   // defaults to the first zone
	DiscountPercent string `json:"discountPercent,omitempty"` // empty means 0
}

// CalculateResponse is the evaluated form
// Example response:
// {
//   "status": "calculated",
//   "currency": "DT",
//   "breakdown": {
//     "area": 4.41,
//     "baseMaterialCost": 1984.5,
//     "slidesCost": 200,
//     "discountAmount": 0,
//     "surcharge": 132.3,
//     "transportFee": 127.5,
//     "taxAmount": 464.417,
//     "totalPrice": 2908.717
//   },
//   "formatted": {"totalPrice": "2 908,72 DT", "area": "4.41 m²"}
// }
type CalculateResponse struct {
	Status    string                    `json:"status"` // "incomplete", "invalid" or "calculated"
	Currency  string                    `json:"currency"`
	Input     *pricing.CalculationInput `json:"input,omitempty"`
	Breakdown *pricing.PriceBreakdown   `json:"breakdown,omitempty"`
	Formatted map[string]string         `json:"formatted,omitempty"`
	Errors    map[string]string         `json:"errors,omitempty"` // field -> message
}

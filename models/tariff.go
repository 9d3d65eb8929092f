package models

// OptionItem is one entry of a select list
type OptionItem struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

// TariffResponse is the price sheet shown on the about page
// Example response:
// {
//   "currency": "DT",
//   "facadeRates": {"with": 450, "without": 360},
//   "slideTypes": [{"label": "Scala", "value": "scala", "price": 100}, ...],
//   "transportZones": [{"label": "Transport Tunis", "value": "tunis", "price": 127.5}, ...],
//   "surchargeRate": 30,
//   "taxPercent": 19
// }
type TariffResponse struct {
	Currency       string             `json:"currency"`
	FacadeRates    map[string]float64 `json:"facadeRates"`
	SlideTypes     []OptionItem       `json:"slideTypes"`
	TransportZones []OptionItem       `json:"transportZones"`
	SurchargeRate  float64            `json:"surchargeRate"`
	TaxPercent     float64            `json:"taxPercent"`
}

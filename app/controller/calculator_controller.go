package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"dressing-calculator/form"
	"dressing-calculator/models"
	"dressing-calculator/pricing"
)

// CalculatorController handles HTTP requests for price calculation
type CalculatorController struct {
	engine *pricing.Engine
}

// NewCalculatorController creates a new CalculatorController
func NewCalculatorController(engine *pricing.Engine) *CalculatorController {
	return &CalculatorController{
		engine: engine,
	}
}

// Calculate handles POST /api/price
// Example request:
// POST /api/price
// {
//   "width": "2",
//   "height": "2",
//   "hasChambranle": true,
//   "hasFacade": true,
//   "slideType": "scala",
//   "slideCount": "2",
//   "transportZone": "tunis",
//   "discountPercent": "10"
// }
// Example response:
// {
//   "status": "calculated",
//   "currency": "DT",
//   "breakdown": { "area": 4.41, ..., "totalPrice": 2648.7615 },
//   "formatted": { "totalPrice": "2 648,76 DT", ... }
// }
// Incomplete or invalid forms still answer 200 with their status and errors.
func (c *CalculatorController) Calculate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Calculate: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Calculate: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := decodeState(c.engine, w, r, "Calculate")
	if !ok {
		return
	}

	if state.Calculated() {
		log.Printf("💰 Calculate: total=%.3f area=%.2f zone=%s", state.Breakdown.TotalPrice, state.Breakdown.Area, state.Input.TransportZone)
	} else {
		log.Printf("⚠️  Calculate: form %s", state.Status)
	}

	writeJSON(w, http.StatusOK, state.Response(c.engine.Tariff().Currency))
}

// decodeState reads a CalculateRequest body and evaluates it. It writes the
// 400 response itself and returns false when the body is unusable.
func decodeState(engine *pricing.Engine, w http.ResponseWriter, r *http.Request, op string) (form.State, bool) {
	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ %s: Invalid request body: %v", op, err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return form.State{}, false
	}

	state, err := form.EvaluateRequest(engine, req)
	if err != nil {
		log.Printf("❌ %s: Rejected input: %v", op, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return form.State{}, false
	}
	return state, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

package router

import (
	"net/http"

	"dressing-calculator/app/controller"
)

type Controllers struct {
	Calculator *controller.CalculatorController
	Tariff     *controller.TariffController
	Quote      *controller.QuoteController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Price calculation
	mux.HandleFunc("/api/price", controllers.Calculator.Calculate)

	// Price sheet (rates, slide types, transport zones)
	mux.HandleFunc("/api/tariff", controllers.Tariff.GetTariff)

	// Quote documents
	mux.HandleFunc("/api/quotes/pdf", controllers.Quote.DownloadPDF)
	mux.HandleFunc("/api/quotes/xlsx", controllers.Quote.DownloadWorkbook)
	mux.HandleFunc("/api/quotes/print", controllers.Quote.Print)

	// HTML quote sheet loaded by headless Chrome for /api/quotes/print
	mux.HandleFunc("/quotes/render", controllers.Quote.RenderQuote)
}

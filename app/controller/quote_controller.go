package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"dressing-calculator/form"
	"dressing-calculator/pricing"
	"dressing-calculator/service"
)

// QuoteController handles HTTP requests for quote documents
type QuoteController struct {
	engine  *pricing.Engine
	printer service.QuotePrinterInterface
	now     func() time.Time
}

// NewQuoteController creates a new QuoteController
func NewQuoteController(engine *pricing.Engine, printer service.QuotePrinterInterface) *QuoteController {
	return &QuoteController{
		engine:  engine,
		printer: printer,
		now:     time.Now,
	}
}

// validPrintFormats is a map of valid format values for Print
var validPrintFormats = map[string]bool{
	"pdf": true,
	"png": true,
}

// DownloadPDF handles POST /api/quotes/pdf with a CalculateRequest body
func (c *QuoteController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	c.download(w, r, "DownloadPDF", "application/pdf", "pdf", service.GenerateQuotePDF)
}

// DownloadWorkbook handles POST /api/quotes/xlsx with a CalculateRequest body
func (c *QuoteController) DownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	c.download(w, r, "DownloadWorkbook",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx",
		service.GenerateQuoteWorkbook)
}

func (c *QuoteController) download(
	w http.ResponseWriter,
	r *http.Request,
	op, contentType, ext string,
	generate func(*service.Quote) ([]byte, error),
) {
	log.Printf("📥 %s: Received %s request to %s", op, r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ %s: Method not allowed: %s", op, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := decodeState(c.engine, w, r, op)
	if !ok {
		return
	}

	quote, ok := c.quote(w, op, &state)
	if !ok {
		return
	}

	data, err := generate(quote)
	if err != nil {
		log.Printf("❌ %s: Error generating document: %v", op, err)
		http.Error(w, fmt.Sprintf("Failed to generate quote: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ %s: %s generated (%d bytes)", op, quote.Reference, len(data))
	writeAttachment(w, contentType, fmt.Sprintf("devis-%s.%s", quote.Reference, ext), data)
}

// RenderQuote handles GET /quotes/render?width=2&height=2&...
// It serves the HTML sheet that Print loads in headless Chrome.
func (c *QuoteController) RenderQuote(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderQuote: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ RenderQuote: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := c.stateFromQuery(w, r, "RenderQuote")
	if !ok {
		return
	}
	quote, ok := c.quote(w, "RenderQuote", &state)
	if !ok {
		return
	}

	html, err := service.RenderQuoteHTML(quote)
	if err != nil {
		log.Printf("❌ RenderQuote: Error rendering HTML: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render quote: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// Print handles GET /api/quotes/print?format=pdf|png&size=thumb|medium&width=2&...
// pdf returns the browser-printed sheet; png returns an optimized JPEG preview.
func (c *QuoteController) Print(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Print: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ Print: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if !validPrintFormats[format] {
		log.Printf("❌ Print: Invalid format: %q", format)
		http.Error(w, "Invalid format. Valid formats: pdf, png", http.StatusBadRequest)
		return
	}

	// Checked here so Chrome is never started for a form without a price.
	state, ok := c.stateFromQuery(w, r, "Print")
	if !ok {
		return
	}
	quote, ok := c.quote(w, "Print", &state)
	if !ok {
		return
	}

	query := state.Fields.Values()
	switch format {
	case "pdf":
		pdf, err := c.printer.PrintPDF(r.Context(), query)
		if err != nil {
			log.Printf("❌ Print: Error generating PDF: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "application/pdf", fmt.Sprintf("devis-%s.pdf", quote.Reference), pdf)

	case "png":
		shot, err := c.printer.Screenshot(r.Context(), query)
		if err != nil {
			log.Printf("❌ Print: Error capturing screenshot: %v", err)
			http.Error(w, fmt.Sprintf("Failed to generate preview: %v", err), http.StatusInternalServerError)
			return
		}
		preview, err := service.OptimizePreview(shot, r.URL.Query().Get("size"))
		if err != nil {
			log.Printf("❌ Print: Error optimizing preview: %v", err)
			http.Error(w, fmt.Sprintf("Failed to optimize preview: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusOK)
		w.Write(preview)
	}
}

func (c *QuoteController) stateFromQuery(w http.ResponseWriter, r *http.Request, op string) (form.State, bool) {
	state, err := form.EvaluateRequest(c.engine, form.RequestFromValues(r.URL.Query()))
	if err != nil {
		log.Printf("❌ %s: Rejected input: %v", op, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return form.State{}, false
	}
	return state, true
}

// quote answers 422 with the form status when there is no price to print
func (c *QuoteController) quote(w http.ResponseWriter, op string, state *form.State) (*service.Quote, bool) {
	quote, err := service.NewQuote(c.engine.Tariff(), state, c.now())
	if err != nil {
		log.Printf("⚠️  %s: form %s, no quote", op, state.Status)
		writeJSON(w, http.StatusUnprocessableEntity, state.Response(c.engine.Tariff().Currency))
		return nil, false
	}
	return quote, true
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

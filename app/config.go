package app

import (
	"os"
	"strings"

	"dressing-calculator/db"
)

// Config is read from the environment once at startup
type Config struct {
	Port          string
	BaseURL       string // where headless Chrome reaches /quotes/render
	PricingConfig string // optional tariff JSON file
	DatabaseURL   string // optional; enables the PostgreSQL tariff
	Env           string
}

// LoadConfig reads PORT, BASE_URL, PRICING_CONFIG, ENV and the database
// variables understood by db.ConnString
func LoadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present (PORT from Render doesn't include it)
	port = strings.TrimPrefix(port, ":")

	baseURL := strings.TrimSuffix(os.Getenv("BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	return Config{
		Port:          port,
		BaseURL:       baseURL,
		PricingConfig: os.Getenv("PRICING_CONFIG"),
		DatabaseURL:   db.ConnString(),
		Env:           os.Getenv("ENV"),
	}
}

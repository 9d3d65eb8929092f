package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestQuotePrinter_RenderURL(t *testing.T) {
	p := NewQuotePrinter("http://localhost:8080")
	got := p.RenderURL(url.Values{"width": {"2"}, "height": {"2.5"}})
	want := "http://localhost:8080/quotes/render?height=2.5&width=2"
	if got != want {
		t.Errorf("RenderURL() = %q, want %q", got, want)
	}
}

func TestDetectChromePath_EnvOverride(t *testing.T) {
	t.Setenv("CHROME_PATH", "/nonexistent/chrome")
	if got := detectChromePath(); got == "/nonexistent/chrome" {
		t.Errorf("detectChromePath() returned a missing binary")
	}
}

// startQuoteServer serves a rendered quote at /quotes/render
func startQuoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	q := calculatedQuote(t, scenarioFields)
	html, err := RenderQuoteHTML(q)
	if err != nil {
		t.Fatalf("RenderQuoteHTML() error = %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireChrome(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if detectChromePath() == "" {
		t.Skip("Chrome/Chromium not found")
	}
}

func TestQuotePrinter_PrintPDF(t *testing.T) {
	requireChrome(t)
	srv := startQuoteServer(t)

	pdf, err := NewQuotePrinter(srv.URL).PrintPDF(context.Background(), url.Values{})
	if err != nil {
		t.Fatalf("PrintPDF() error = %v", err)
	}
	if len(pdf) < 5 || string(pdf[:5]) != "%PDF-" {
		t.Errorf("output does not start with %%PDF- header")
	}
}

func TestQuotePrinter_Screenshot(t *testing.T) {
	requireChrome(t)
	srv := startQuoteServer(t)

	shot, err := NewQuotePrinter(srv.URL).Screenshot(context.Background(), url.Values{})
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(shot)); err != nil {
		t.Fatalf("screenshot is not a PNG: %v", err)
	}

	preview, err := OptimizePreview(shot, "thumb")
	if err != nil {
		t.Fatalf("OptimizePreview() error = %v", err)
	}
	if len(preview) == 0 {
		t.Error("empty preview")
	}
}

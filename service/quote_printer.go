package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const printTimeout = 30 * time.Second

// QuotePrinter renders the HTML quote sheet in headless Chrome. The sheet is
// served by this application at BaseURL/quotes/render.
type QuotePrinter struct {
	baseURL string // e.g. "http://localhost:8080"
}

// NewQuotePrinter creates a new QuotePrinter
func NewQuotePrinter(baseURL string) *QuotePrinter {
	return &QuotePrinter{baseURL: baseURL}
}

// RenderURL is the page Chrome loads for the given form values
func (p *QuotePrinter) RenderURL(query url.Values) string {
	return fmt.Sprintf("%s/quotes/render?%s", p.baseURL, query.Encode())
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// newBrowser starts a headless browser bound to ctx. The returned cancel
// stops the browser and releases the allocator.
func newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// waitForAssets resolves once fonts have loaded
const waitForAssets = `document.fonts.ready.then(() => true)`

// PrintPDF prints the quote sheet to an A4 PDF
func (p *QuotePrinter) PrintPDF(ctx context.Context, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, printTimeout)
	defer cancel()

	browserCtx, browserCancel := newBrowser(ctx)
	defer browserCancel()

	renderURL := p.RenderURL(query)
	log.Printf("🖨️  PrintPDF: %s", renderURL)

	var pdfBuf []byte
	var ready bool
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(794, 1123), // 210mm x 297mm at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForAssets, &ready, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ PrintPDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// Screenshot captures the quote sheet as a PNG
func (p *QuotePrinter) Screenshot(ctx context.Context, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, printTimeout)
	defer cancel()

	browserCtx, browserCancel := newBrowser(ctx)
	defer browserCancel()

	renderURL := p.RenderURL(query)
	log.Printf("📸 Screenshot: %s", renderURL)

	var buf []byte
	var ready bool
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitForAssets, &ready, awaitPromise),
		chromedp.Screenshot(".page", &buf, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	log.Printf("✅ Screenshot: %d bytes", len(buf))
	return buf, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

package service

import (
	"context"
	"net/url"
)

// QuotePrinterInterface defines the contract for browser-rendered quotes
type QuotePrinterInterface interface {
	PrintPDF(ctx context.Context, query url.Values) ([]byte, error)
	Screenshot(ctx context.Context, query url.Values) ([]byte, error)
}

// Ensure QuotePrinter implements QuotePrinterInterface
var _ QuotePrinterInterface = (*QuotePrinter)(nil)

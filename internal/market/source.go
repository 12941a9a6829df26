package market

import (
	"context"

	"github.com/brownbull-back/internal/external"
)

// QuoteSource is the upstream the provider reads quotes from.
//
//go:generate mockgen -package=market -destination=mock_quote_source_test.go -source=source.go QuoteSource
type QuoteSource interface {
	GetIntradaySeries(ctx context.Context, symbol, interval string) (*external.IntradaySeries, error)
	GetGlobalQuote(ctx context.Context, symbol string) (*external.GlobalQuote, error)
}

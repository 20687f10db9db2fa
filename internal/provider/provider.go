package provider

import (
	"context"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// HistoryProvider fetches daily OHLCV history for a single ticker.
// Implementations return an error (or an empty series) when no usable
// data exists; callers treat both as "skip this ticker".
type HistoryProvider interface {
	Fetch(ctx context.Context, ticker string, days int) (*model.PriceSeries, error)
	Name() string
}

package provider

import (
	"context"
	"time"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing.
type MockProvider struct {
	BasePrice float64
	Series    *model.PriceSeries
	Err       error
}

func (m *MockProvider) Name() string { return "mock" }

// Fetch returns the configured series or error; otherwise it generates a
// gently trending synthetic history.
func (m *MockProvider) Fetch(_ context.Context, ticker string, days int) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series != nil {
		return m.Series, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return &model.PriceSeries{
		Ticker:    ticker,
		Points:    GenerateBars(base, days),
		FetchedAt: time.Now(),
	}, nil
}

// GenerateBars builds count synthetic daily bars drifting upward around
// basePrice.
func GenerateBars(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return points
}

package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// AlpacaProvider implements HistoryProvider using the Alpaca market data
// API. Requires an API key pair.
type AlpacaProvider struct {
	client *marketdata.Client
}

// NewAlpacaProvider creates an Alpaca market data provider.
func NewAlpacaProvider(apiKey, apiSecret string) *AlpacaProvider {
	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

type alpacaBars struct {
	bars []marketdata.Bar
	err  error
}

// Fetch retrieves daily bars covering the last days calendar days. The
// Alpaca client has no context-aware call, so the request runs in a
// goroutine and the context deadline is enforced around it.
func (p *AlpacaProvider) Fetch(ctx context.Context, ticker string, days int) (*model.PriceSeries, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	ch := make(chan alpacaBars, 1)
	go func() {
		bars, err := p.client.GetBars(ticker, marketdata.GetBarsRequest{
			TimeFrame:  marketdata.OneDay,
			Start:      start,
			End:        end,
			Adjustment: marketdata.Raw,
		})
		ch <- alpacaBars{bars: bars, err: err}
	}()

	var res alpacaBars
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.err != nil {
		return nil, fmt.Errorf("alpaca fetch: %w", res.err)
	}
	if len(res.bars) == 0 {
		return nil, fmt.Errorf("alpaca: no data returned for %s", ticker)
	}

	points := make([]model.PricePoint, 0, len(res.bars))
	for _, b := range res.bars {
		points = append(points, model.PricePoint{
			Date:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}

	return &model.PriceSeries{
		Ticker:    ticker,
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}

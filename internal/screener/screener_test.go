package screener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// MockHistoryProvider is a mock implementation of provider.HistoryProvider.
type MockHistoryProvider struct {
	mock.Mock
}

func (m *MockHistoryProvider) Fetch(ctx context.Context, ticker string, days int) (*model.PriceSeries, error) {
	args := m.Called(ctx, ticker, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PriceSeries), args.Error(1)
}

func (m *MockHistoryProvider) Name() string { return "mock" }

// driftSeries builds n bars drifting by drift per day with a ±0.5
// alternating wobble, so the series has both gaining and losing days and
// the RSI stays defined.
func driftSeries(ticker string, n int, start, drift float64) *model.PriceSeries {
	points := make([]model.PricePoint, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := start + drift*float64(i) + 0.5*float64(i%2)
		points[i] = model.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return &model.PriceSeries{Ticker: ticker, Points: points}
}

func newTestScreener(p *MockHistoryProvider, workers int) *Screener {
	return New(p, zap.NewNop(), Options{Workers: workers, FetchTimeout: time.Second})
}

func TestRun_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		tickers []string
		days    int
		limit   int
	}{
		{"empty ticker list", nil, 365, 15},
		{"days below minimum", []string{"AAPL"}, 59, 15},
		{"zero limit", []string{"AAPL"}, 365, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(MockHistoryProvider)
			s := newTestScreener(p, 1)
			_, err := s.Run(context.Background(), tt.tickers, tt.days, tt.limit)
			assert.ErrorIs(t, err, ErrInvalidInput)
			p.AssertNotCalled(t, "Fetch")
		})
	}
}

func TestRun_OneProviderFailureDoesNotAffectOthers(t *testing.T) {
	p := new(MockHistoryProvider)
	p.On("Fetch", mock.Anything, "AAPL", 365).Return(driftSeries("AAPL", 260, 100, 0.1), nil)
	p.On("Fetch", mock.Anything, "MSFT", 365).Return(nil, errors.New("connection refused"))

	s := newTestScreener(p, 2)
	report, err := s.Run(context.Background(), []string{"AAPL", "MSFT"}, 365, 15)

	assert.NoError(t, err)
	assert.Len(t, report.Results, 1)
	assert.Equal(t, "AAPL", report.Results[0].Ticker)
	assert.Len(t, report.Skips, 1)
	assert.Equal(t, "MSFT", report.Skips[0].Ticker)
	assert.Equal(t, SkipProviderError, report.Skips[0].Reason)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_ShortHistoryIsSkipped(t *testing.T) {
	p := new(MockHistoryProvider)
	// 120 bars pass the raw minimum but leave no complete 200-day window.
	p.On("Fetch", mock.Anything, "TINY", 365).Return(driftSeries("TINY", 50, 100, 0.1), nil)
	p.On("Fetch", mock.Anything, "MID", 365).Return(driftSeries("MID", 120, 100, 0.1), nil)

	s := newTestScreener(p, 1)
	report, err := s.Run(context.Background(), []string{"TINY", "MID"}, 365, 15)

	assert.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Len(t, report.Skips, 2)
	for _, skip := range report.Skips {
		assert.Equal(t, SkipInsufficientHistory, skip.Reason)
	}
}

func TestRun_EmptySeriesIsProviderError(t *testing.T) {
	p := new(MockHistoryProvider)
	p.On("Fetch", mock.Anything, "GONE", 365).Return(&model.PriceSeries{Ticker: "GONE"}, nil)

	s := newTestScreener(p, 1)
	report, err := s.Run(context.Background(), []string{"GONE"}, 365, 15)

	assert.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Len(t, report.Skips, 1)
	assert.Equal(t, SkipProviderError, report.Skips[0].Reason)
}

func TestRun_SortsDescendingAndTruncates(t *testing.T) {
	p := new(MockHistoryProvider)
	p.On("Fetch", mock.Anything, "DOWN", 365).Return(driftSeries("DOWN", 260, 200, -0.2), nil)
	p.On("Fetch", mock.Anything, "UP", 365).Return(driftSeries("UP", 260, 100, 0.2), nil)

	s := newTestScreener(p, 2)
	report, err := s.Run(context.Background(), []string{"DOWN", "UP"}, 365, 15)

	assert.NoError(t, err)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, "UP", report.Results[0].Ticker)
	assert.Greater(t, report.Results[0].Score, report.Results[1].Score)

	// limit truncates after sorting, so only the best survives.
	report, err = s.Run(context.Background(), []string{"DOWN", "UP"}, 365, 1)
	assert.NoError(t, err)
	assert.Len(t, report.Results, 1)
	assert.Equal(t, "UP", report.Results[0].Ticker)
}

func TestRun_TiesKeepInputOrder(t *testing.T) {
	p := new(MockHistoryProvider)
	p.On("Fetch", mock.Anything, "BBB", 365).Return(driftSeries("BBB", 260, 100, 0.2), nil)
	p.On("Fetch", mock.Anything, "AAA", 365).Return(driftSeries("AAA", 260, 100, 0.2), nil)

	s := newTestScreener(p, 4)
	report, err := s.Run(context.Background(), []string{"BBB", "AAA"}, 365, 15)

	assert.NoError(t, err)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, report.Results[0].Score, report.Results[1].Score)
	assert.Equal(t, "BBB", report.Results[0].Ticker)
	assert.Equal(t, "AAA", report.Results[1].Ticker)
}

func TestRun_AllTickersFailYieldsEmptyResult(t *testing.T) {
	p := new(MockHistoryProvider)
	p.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("nope"))

	s := newTestScreener(p, 2)
	report, err := s.Run(context.Background(), []string{"A", "B", "C"}, 365, 15)

	assert.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Len(t, report.Skips, 3)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	tickers := []string{"T1", "T2", "T3", "T4", "T5", "T6"}
	setup := func() *MockHistoryProvider {
		p := new(MockHistoryProvider)
		for i, tk := range tickers {
			p.On("Fetch", mock.Anything, tk, 365).
				Return(driftSeries(tk, 260, 100+10*float64(i), 0.05*float64(i+1)), nil)
		}
		return p
	}

	sequential, err := newTestScreener(setup(), 1).Run(context.Background(), tickers, 365, 15)
	assert.NoError(t, err)
	parallel, err := newTestScreener(setup(), 4).Run(context.Background(), tickers, 365, 15)
	assert.NoError(t, err)

	assert.Equal(t, sequential.Results, parallel.Results)
}

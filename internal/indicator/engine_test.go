package indicator

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// alternatingSeries builds n bars whose closes alternate 100, 101, 100...
// Every indicator has a closed form on it: the MAs are 100.5, the RSI is
// exactly 50, and the true range is 2 on every bar.
func alternatingSeries(n int) *model.PriceSeries {
	points := make([]model.PricePoint, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := 100.0 + float64(i%2)
		points[i] = model.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Ticker: "TEST", Points: points}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompute_InsufficientHistory(t *testing.T) {
	_, err := Compute(alternatingSeries(MinHistory - 1))
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestCompute_NoCompleteWindow(t *testing.T) {
	// 100 bars pass the minimum but none has a full 200-day MA window.
	_, err := Compute(alternatingSeries(100))
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestCompute_AlternatingSeriesValues(t *testing.T) {
	rows, err := Compute(alternatingSeries(210))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The 200-day MA is the binding window: first complete row is index
	// 199, so 210 bars yield 11 rows.
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}

	last := rows[len(rows)-1] // index 209, odd, close 101
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"Close", last.Close, 101},
		{"MA20", last.MA20, 100.5},
		{"MA50", last.MA50, 100.5},
		{"MA200", last.MA200, 100.5},
		{"RSI14", last.RSI14, 50},
		{"ATR14", last.ATR14, 2},
		{"ATRPct", last.ATRPct, 2.0 / 101},
		{"VolAvg20", last.VolAvg20, 1000},
		{"VolRatio", last.VolRatio, 1},
		{"Ret5D", last.Ret5D, 101.0/100 - 1},
		{"Ret20D", last.Ret20D, 0},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestCompute_NoPartialRows(t *testing.T) {
	rows, err := Compute(alternatingSeries(260))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, row := range rows {
		for name, v := range map[string]float64{
			"MA20": row.MA20, "MA50": row.MA50, "MA200": row.MA200,
			"RSI14": row.RSI14, "ATR14": row.ATR14, "ATRPct": row.ATRPct,
			"VolAvg20": row.VolAvg20, "VolRatio": row.VolRatio,
			"Ret5D": row.Ret5D, "Ret20D": row.Ret20D,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("row %d: %s is not finite", i, name)
			}
		}
	}
}

func TestCompute_FlatSeriesRSIUndefined(t *testing.T) {
	// A flat series has no losing days, so the RSI is undefined on every
	// bar and no complete row can exist.
	points := make([]model.PricePoint, 250)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = model.PricePoint{
			Date: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000,
		}
	}
	_, err := Compute(&model.PriceSeries{Ticker: "FLAT", Points: points})
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory for flat series, got %v", err)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	series := alternatingSeries(230)
	first, err := Compute(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compute(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical output from repeated computation")
	}
}

func TestCompute_DropsMalformedBars(t *testing.T) {
	clean := alternatingSeries(210)
	want, err := Compute(clean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Interleave bars with missing closes; they must be dropped before
	// indicator computation, leaving the output unchanged.
	dirty := &model.PriceSeries{Ticker: clean.Ticker}
	for i, p := range clean.Points {
		dirty.Points = append(dirty.Points, p)
		if i%50 == 0 {
			bad := p
			bad.Close = 0
			dirty.Points = append(dirty.Points, bad)
		}
	}
	got, err := Compute(dirty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatal("expected malformed bars to be dropped without affecting output")
	}
}

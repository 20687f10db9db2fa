// Package indicator turns a raw OHLCV series into fully-populated
// indicator rows. RSI and ATR use plain rolling means rather than Wilder
// smoothing: the scoring thresholds were tuned against these exact
// definitions, so "fixing" them would shift every score.
package indicator

import (
	"errors"
	"fmt"
	"math"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// MinHistory is the minimum number of bars required before any
// indicators are computed at all.
const MinHistory = 60

const (
	maShortPeriod = 20
	maMidPeriod   = 50
	maLongPeriod  = 200
	rsiPeriod     = 14
	atrPeriod     = 14
	volPeriod     = 20
	retShortDays  = 5
	retLongDays   = 20
)

// ErrInsufficientHistory reports that a series is too short to produce
// even one fully-defined indicator row.
var ErrInsufficientHistory = errors.New("insufficient history")

// Compute derives indicator rows from a price series. Only rows where
// every indicator has a complete lookback window are returned; rows with
// any undefined value are dropped, never NaN-filled. The computation is a
// pure function of the input.
func Compute(series *model.PriceSeries) ([]model.IndicatorRow, error) {
	points := filterValid(series)
	if len(points) < MinHistory {
		return nil, fmt.Errorf("%w: %d bars, need at least %d", ErrInsufficientHistory, len(points), MinHistory)
	}

	n := len(points)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, p := range points {
		closes[i] = p.Close
		volumes[i] = float64(p.Volume)
	}

	ma20 := rollingMean(closes, maShortPeriod)
	ma50 := rollingMean(closes, maMidPeriod)
	ma200 := rollingMean(closes, maLongPeriod)
	rsi := computeRSI(closes, rsiPeriod)
	atr := computeATR(points, atrPeriod)
	volAvg := rollingMean(volumes, volPeriod)
	ret5 := trailingReturn(closes, retShortDays)
	ret20 := trailingReturn(closes, retLongDays)

	rows := make([]model.IndicatorRow, 0, n)
	for i, p := range points {
		row := model.IndicatorRow{
			Date:     p.Date,
			Close:    p.Close,
			Volume:   p.Volume,
			MA20:     ma20[i],
			MA50:     ma50[i],
			MA200:    ma200[i],
			RSI14:    rsi[i],
			ATR14:    atr[i],
			ATRPct:   atr[i] / p.Close,
			VolAvg20: volAvg[i],
			VolRatio: volumes[i] / volAvg[i],
			Ret5D:    ret5[i],
			Ret20D:   ret20[i],
		}
		if rowComplete(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no bar has a complete indicator window", ErrInsufficientHistory)
	}
	return rows, nil
}

// filterValid drops bars with missing or malformed core fields before any
// indicator math runs. Missing values are dropped, not imputed.
func filterValid(series *model.PriceSeries) []model.PricePoint {
	if series == nil {
		return nil
	}
	points := make([]model.PricePoint, 0, len(series.Points))
	for _, p := range series.Points {
		if p.Close <= 0 || p.High <= 0 || p.Low <= 0 || p.High < p.Low || p.Volume < 0 {
			continue
		}
		points = append(points, p)
	}
	return points
}

// computeRSI computes the 14-period RSI from simple rolling means of
// gains and losses. When the window holds no losses the ratio is
// undefined and the value stays NaN; it is not clamped to 100.
func computeRSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	gains := make([]float64, n)
	losses := make([]float64, n)
	gainSum, lossSum := 0.0, 0.0

	out[0] = math.NaN()
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			out[i] = math.NaN()
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = math.NaN()
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// computeATR computes the 14-period simple rolling mean of true range.
// The first bar has no previous close, so its true range is high-low.
func computeATR(points []model.PricePoint, period int) []float64 {
	n := len(points)
	tr := make([]float64, n)
	tr[0] = points[0].High - points[0].Low
	for i := 1; i < n; i++ {
		prevClose := points[i-1].Close
		tr[i] = max3(
			points[i].High-points[i].Low,
			math.Abs(points[i].High-prevClose),
			math.Abs(points[i].Low-prevClose),
		)
	}
	return rollingMean(tr, period)
}

func rowComplete(row model.IndicatorRow) bool {
	for _, v := range []float64{
		row.Close, row.MA20, row.MA50, row.MA200, row.RSI14,
		row.ATR14, row.ATRPct, row.VolAvg20, row.VolRatio, row.Ret5D, row.Ret20D,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

package scoring

import (
	"math"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// RuleScore is one rule's contribution to the composite score.
type RuleScore struct {
	Name  string
	Delta float64
	Tags  []string
}

// scoreTrend rewards closes above the 50- and 200-day moving averages and
// the full bullish alignment close > MA50 > MA200. Skipped entirely when
// either MA is undefined.
func scoreTrend(row model.IndicatorRow) RuleScore {
	rs := RuleScore{Name: "trend"}
	if math.IsNaN(row.MA50) || math.IsNaN(row.MA200) {
		return rs
	}
	if row.Close > row.MA50 {
		rs.Delta += 15
		rs.Tags = append(rs.Tags, "Above MA50")
	} else {
		rs.Delta -= 10
	}
	if row.Close > row.MA200 {
		rs.Delta += 15
		rs.Tags = append(rs.Tags, "Above MA200")
	} else {
		rs.Delta -= 10
	}
	if row.Close > row.MA50 && row.MA50 > row.MA200 {
		rs.Delta += 10
		rs.Tags = append(rs.Tags, "Strong Uptrend")
	}
	return rs
}

// scoreMomentum maps the RSI into mutually exclusive bands; only the
// first matching band fires. RSI in (70, 75] deliberately scores nothing.
func scoreMomentum(row model.IndicatorRow) RuleScore {
	rs := RuleScore{Name: "momentum"}
	rsi := row.RSI14
	if math.IsNaN(rsi) {
		return rs
	}
	switch {
	case rsi >= 50 && rsi <= 70:
		rs.Delta += 20
		rs.Tags = append(rs.Tags, "Bullish Momentum")
	case rsi >= 40 && rsi < 50:
		rs.Delta += 10
		rs.Tags = append(rs.Tags, "Building Momentum")
	case rsi > 75:
		rs.Delta -= 10
		rs.Tags = append(rs.Tags, "Overbought")
	case rsi < 30:
		rs.Delta -= 15
		rs.Tags = append(rs.Tags, "Oversold")
	}
	return rs
}

// scoreReturns adds the clamped 5-day and 20-day trailing returns. Both
// contributions always apply and never tag.
func scoreReturns(row model.IndicatorRow) RuleScore {
	rs := RuleScore{Name: "returns"}
	if !math.IsNaN(row.Ret5D) {
		rs.Delta += clamp(row.Ret5D*100, -10, 10)
	}
	if !math.IsNaN(row.Ret20D) {
		rs.Delta += clamp(row.Ret20D*50, -15, 15)
	}
	return rs
}

// scoreVolume rewards volume well above the 20-day average and penalizes
// drying-up volume.
func scoreVolume(row model.IndicatorRow) RuleScore {
	rs := RuleScore{Name: "volume"}
	if math.IsNaN(row.VolRatio) {
		return rs
	}
	switch {
	case row.VolRatio > 1.5:
		rs.Delta += 10
		rs.Tags = append(rs.Tags, "High Volume")
	case row.VolRatio < 0.7:
		rs.Delta -= 5
		rs.Tags = append(rs.Tags, "Low Volume")
	}
	return rs
}

// scoreVolatility prefers a moderate daily ATR band (1.5%-5% of close).
func scoreVolatility(row model.IndicatorRow) RuleScore {
	rs := RuleScore{Name: "volatility"}
	if math.IsNaN(row.ATRPct) {
		return rs
	}
	switch {
	case row.ATRPct >= 0.015 && row.ATRPct <= 0.05:
		rs.Delta += 10
		rs.Tags = append(rs.Tags, "Tradable Volatility")
	case row.ATRPct > 0.08:
		rs.Delta -= 10
		rs.Tags = append(rs.Tags, "Very Volatile")
	case row.ATRPct < 0.01:
		rs.Delta -= 5
		rs.Tags = append(rs.Tags, "Very Quiet")
	}
	return rs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

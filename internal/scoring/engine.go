// Package scoring reduces the latest indicator row to a bounded,
// explainable composite score with categorical tags.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// rules are evaluated in this exact order; the tag sequence in the
// resulting signal follows it.
var rules = []func(model.IndicatorRow) RuleScore{
	scoreTrend,
	scoreMomentum,
	scoreReturns,
	scoreVolume,
	scoreVolatility,
}

// Evaluate computes the composite signal for a single fully-populated
// indicator row. Pure function: the same row always yields the same
// score, tags, and notes.
func Evaluate(row model.IndicatorRow) model.Signal {
	score := 0.0
	tags := []string{}
	for _, rule := range rules {
		rs := rule(row)
		score += rs.Delta
		tags = append(tags, rs.Tags...)
	}
	return model.Signal{
		Score: math.Round(score*10) / 10,
		Tags:  tags,
		Notes: notes(row),
	}
}

// notes renders the three fixed explanation fields; undefined values
// render as "n/a" instead of a number.
func notes(row model.IndicatorRow) string {
	parts := make([]string, 0, 3)
	if math.IsNaN(row.RSI14) {
		parts = append(parts, "RSI=n/a")
	} else {
		parts = append(parts, fmt.Sprintf("RSI=%.1f", row.RSI14))
	}
	if math.IsNaN(row.VolRatio) {
		parts = append(parts, "Vol xAvg=n/a")
	} else {
		parts = append(parts, fmt.Sprintf("Vol xAvg=%.2f", row.VolRatio))
	}
	if math.IsNaN(row.ATRPct) {
		parts = append(parts, "ATR%=n/a")
	} else {
		parts = append(parts, fmt.Sprintf("ATR%%=%.2f%%", row.ATRPct*100))
	}
	return strings.Join(parts, "; ")
}

package model

import "time"

// IndicatorRow holds all derived indicators for one trading day.
// The indicator engine only emits rows where every field is defined.
type IndicatorRow struct {
	Date     time.Time
	Close    float64
	Volume   int64
	MA20     float64
	MA50     float64
	MA200    float64
	RSI14    float64
	ATR14    float64
	ATRPct   float64 // ATR14 / Close
	VolAvg20 float64
	VolRatio float64 // Volume / VolAvg20
	Ret5D    float64 // Close[t]/Close[t-5] - 1
	Ret20D   float64 // Close[t]/Close[t-20] - 1
}

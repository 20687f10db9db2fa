package model

// Signal is the scoring engine's verdict for a single indicator row.
type Signal struct {
	Score float64  // rounded to 1 decimal
	Tags  []string // rule-evaluation order, no duplicates
	Notes string   // "RSI=...; Vol xAvg=...; ATR%=..."
}

// ScoreResult is one ranked screener entry, ready for presentation.
type ScoreResult struct {
	Ticker   string   `json:"ticker"`
	Close    float64  `json:"close"`
	Volume   int64    `json:"volume"`
	RSI      float64  `json:"rsi"`
	VolRatio float64  `json:"vol_ratio"`
	ATRPct   float64  `json:"atr_pct"`
	Ret5D    float64  `json:"ret_5d"`
	Ret20D   float64  `json:"ret_20d"`
	Score    float64  `json:"score"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
}

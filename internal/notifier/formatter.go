package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

// FormatScanReport formats ranked screener results into a Telegram
// message.
func FormatScanReport(results []model.ScoreResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📡 <b>Stock Radar Daily Scan</b> | %s\n\n", time.Now().Format("2006-01-02")))

	if len(results) == 0 {
		b.WriteString("No usable signals today.\n")
		return b.String()
	}

	for i, r := range results {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b>  score %.1f  $%.2f  vol %s\n",
			i+1, r.Ticker, r.Score, r.Close, humanize.Comma(r.Volume)))
		if len(r.Tags) > 0 {
			b.WriteString(fmt.Sprintf("   %s\n", strings.Join(r.Tags, ", ")))
		}
		b.WriteString(fmt.Sprintf("   %s\n", r.Notes))
	}

	b.WriteString("\n(Score is a composite of trend, RSI, recent returns, volume, and volatility.)")
	return b.String()
}

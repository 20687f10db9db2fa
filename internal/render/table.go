// Package render prints ranked screener results as a console table.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// Table writes results as a ranked fixed-width table. The header is
// bolded only when writing to a terminal.
func Table(w io.Writer, results []model.ScoreResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	emphasize := isTerminal(w)

	fmt.Fprintln(w, "\n=== Top Signals ===")
	header := fmt.Sprintf("%-4s %-6s %6s %10s %6s %8s %8s %8s %8s %12s  %s",
		"Rank", "Ticker", "Score", "Price", "RSI", "VolxAvg", "ATR%", "5d%", "20d%", "Volume", "Tags")
	if emphasize {
		fmt.Fprintln(w, ansiBold+header+ansiReset)
	} else {
		fmt.Fprintln(w, header)
	}
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for i, r := range results {
		tags := "-"
		if len(r.Tags) > 0 {
			tags = strings.Join(r.Tags, ",")
		}
		fmt.Fprintf(w, "%-4d %-6s %6.1f %10.2f %6.1f %8.2f %8.2f %8.2f %8.2f %12s  %s\n",
			i+1, r.Ticker, r.Score, r.Close, r.RSI, r.VolRatio,
			r.ATRPct*100, r.Ret5D*100, r.Ret20D*100, humanize.Comma(r.Volume), tags)
	}

	fmt.Fprintln(w, "\n(Score is a composite of trend, RSI, recent returns, volume, and volatility.)")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

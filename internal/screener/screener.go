// Package screener orchestrates the fetch → indicators → score pipeline
// across a ticker universe and ranks the outcome.
package screener

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/indicator"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/provider"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/scoring"
)

// ErrInvalidInput reports malformed top-level arguments. Unlike
// per-ticker failures, it is surfaced to the caller immediately.
var ErrInvalidInput = errors.New("invalid input")

// SkipReason classifies why a ticker produced no result.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipProviderError
	SkipInsufficientHistory
)

func (r SkipReason) String() string {
	switch r {
	case SkipProviderError:
		return "provider error"
	case SkipInsufficientHistory:
		return "insufficient history"
	default:
		return "none"
	}
}

// Skip records one skipped ticker. One ticker's failure never aborts the
// batch; skips are collected so callers can inspect them.
type Skip struct {
	Ticker string
	Reason SkipReason
	Err    error
}

// Report is the outcome of one screener run.
type Report struct {
	RunID   string
	Results []model.ScoreResult
	Skips   []Skip
}

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	Workers      int
	FetchTimeout time.Duration
}

const (
	defaultWorkers      = 4
	defaultFetchTimeout = 30 * time.Second
)

// Screener runs the screening pipeline over a ticker universe.
type Screener struct {
	provider     provider.HistoryProvider
	workers      int
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// New creates a Screener backed by the given history provider.
func New(p provider.HistoryProvider, logger *zap.Logger, opts Options) *Screener {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	return &Screener{
		provider:     p,
		workers:      opts.Workers,
		fetchTimeout: opts.FetchTimeout,
		logger:       logger,
	}
}

// outcome is the per-ticker internal result slot, indexed by input
// position so ties keep their original order.
type outcome struct {
	result model.ScoreResult
	skip   SkipReason
	err    error
}

// Run screens the tickers and returns at most limit results sorted by
// score descending (stable; ties keep input order). Per-ticker failures
// are recorded as skips and never abort the batch; zero successes yields
// an empty result list, not an error.
func (s *Screener) Run(ctx context.Context, tickers []string, days, limit int) (*Report, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: empty ticker list", ErrInvalidInput)
	}
	if days < indicator.MinHistory {
		return nil, fmt.Errorf("%w: days %d below minimum %d", ErrInvalidInput, days, indicator.MinHistory)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d must be at least 1", ErrInvalidInput, limit)
	}

	runID := uuid.NewString()
	s.logger.Info("screener run starting",
		zap.String("run_id", runID),
		zap.String("provider", s.provider.Name()),
		zap.Int("tickers", len(tickers)),
		zap.Int("days", days),
		zap.Int("limit", limit),
	)

	outcomes := make([]outcome, len(tickers))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = s.analyze(ctx, tickers[i], days)
			}
		}()
	}
	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &Report{RunID: runID}
	for i, out := range outcomes {
		if out.skip != SkipNone {
			s.logger.Warn("ticker skipped",
				zap.String("run_id", runID),
				zap.String("ticker", tickers[i]),
				zap.String("reason", out.skip.String()),
				zap.Error(out.err),
			)
			report.Skips = append(report.Skips, Skip{Ticker: tickers[i], Reason: out.skip, Err: out.err})
			continue
		}
		report.Results = append(report.Results, out.result)
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Score > report.Results[j].Score
	})
	if len(report.Results) > limit {
		report.Results = report.Results[:limit]
	}

	s.logger.Info("screener run finished",
		zap.String("run_id", runID),
		zap.Int("results", len(report.Results)),
		zap.Int("skipped", len(report.Skips)),
	)
	return report, nil
}

// analyze runs the full pipeline for one ticker. Every failure mode maps
// to a skip reason rather than an error for the batch.
func (s *Screener) analyze(ctx context.Context, ticker string, days int) outcome {
	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	series, err := s.provider.Fetch(fctx, ticker, days)
	if err != nil {
		return outcome{skip: SkipProviderError, err: err}
	}
	if series.Len() == 0 {
		return outcome{skip: SkipProviderError, err: fmt.Errorf("empty series for %s", ticker)}
	}

	rows, err := indicator.Compute(series)
	if err != nil {
		if errors.Is(err, indicator.ErrInsufficientHistory) {
			return outcome{skip: SkipInsufficientHistory, err: err}
		}
		return outcome{skip: SkipProviderError, err: err}
	}

	last := rows[len(rows)-1]
	sig := scoring.Evaluate(last)
	return outcome{result: model.ScoreResult{
		Ticker:   ticker,
		Close:    last.Close,
		Volume:   last.Volume,
		RSI:      last.RSI14,
		VolRatio: last.VolRatio,
		ATRPct:   last.ATRPct,
		Ret5D:    last.Ret5D,
		Ret20D:   last.Ret20D,
		Score:    sig.Score,
		Tags:     sig.Tags,
		Notes:    sig.Notes,
	}}
}

// Package server exposes the screener over HTTP. It is thin plumbing:
// query parsing and rendering only, with all screening delegated to the
// screener package.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-fuego/fuego"
	"github.com/go-fuego/fuego/option"
	"github.com/go-fuego/fuego/param"
	"go.uber.org/zap"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/config"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/model"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/provider"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/screener"
)

const (
	minDays     = 60
	maxDays     = 2000
	maxLimit    = 100
	historyMin  = 30
	historyMax  = 730
	historyTail = 60
)

// Server wires the screener and a history provider into HTTP routes.
type Server struct {
	fuego        *fuego.Server
	screener     *screener.Screener
	provider     provider.HistoryProvider
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// SignalsResponse is the /signals payload.
type SignalsResponse struct {
	RunID   string              `json:"run_id"`
	Count   int                 `json:"count"`
	Tickers []string            `json:"tickers"`
	Days    int                 `json:"days"`
	Limit   int                 `json:"limit"`
	Results []model.ScoreResult `json:"results"`
}

// ClosePoint is one charting point in the /history payload.
type ClosePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// HistoryResponse is the /history/{ticker} payload.
type HistoryResponse struct {
	Ticker string       `json:"ticker"`
	Days   int          `json:"days"`
	Points []ClosePoint `json:"points"`
}

// RootResponse is the service banner.
type RootResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// New creates the HTTP server and registers all routes.
func New(addr string, scr *screener.Screener, prov provider.HistoryProvider, fetchTimeout time.Duration, logger *zap.Logger) *Server {
	s := &Server{
		fuego:        fuego.NewServer(fuego.WithAddr(addr)),
		screener:     scr,
		provider:     prov,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}

	fuego.Use(s.fuego, allowAllCORS)

	fuego.Get(s.fuego, "/", s.getRoot,
		option.Summary("Service banner"),
	)
	fuego.Get(s.fuego, "/signals", s.getSignals,
		option.Summary("Top momentum / signal stocks"),
		option.Query("tickers", "Comma-separated tickers; defaults to the built-in large caps"),
		option.QueryInt("days", "Days of history to use (>= 60 for indicators)", param.Default(365)),
		option.QueryInt("limit", "How many top signals to return", param.Default(15)),
	)
	fuego.Get(s.fuego, "/history/{ticker}", s.getHistory,
		option.Summary("Recent daily closes for charts / sparklines"),
		option.QueryInt("days", "Days of history to return", param.Default(120)),
	)

	return s
}

// Run starts serving; it blocks until the listener fails or the process
// exits.
func (s *Server) Run() error {
	return s.fuego.Run()
}

func (s *Server) getRoot(fuego.ContextNoBody) (RootResponse, error) {
	return RootResponse{
		Message:   "Welcome to Stock Radar API",
		Endpoints: []string{"/signals", "/history/{ticker}"},
	}, nil
}

func (s *Server) getSignals(c fuego.ContextNoBody) (SignalsResponse, error) {
	days := c.QueryParamInt("days")
	limit := c.QueryParamInt("limit")
	if days < minDays || days > maxDays {
		return SignalsResponse{}, fuego.BadRequestError{
			Title:  "days out of range",
			Detail: "days must be within [60, 2000]",
		}
	}
	if limit < 1 || limit > maxLimit {
		return SignalsResponse{}, fuego.BadRequestError{
			Title:  "limit out of range",
			Detail: "limit must be within [1, 100]",
		}
	}

	tickers := config.SplitTickers(c.QueryParam("tickers"))
	if len(tickers) == 0 {
		tickers = screener.DefaultUniverse
	}

	report, err := s.screener.Run(c.Context(), tickers, days, limit)
	if err != nil {
		if errors.Is(err, screener.ErrInvalidInput) {
			return SignalsResponse{}, fuego.BadRequestError{Title: "invalid input", Detail: err.Error()}
		}
		return SignalsResponse{}, err
	}

	results := report.Results
	if results == nil {
		results = []model.ScoreResult{}
	}
	return SignalsResponse{
		RunID:   report.RunID,
		Count:   len(results),
		Tickers: tickers,
		Days:    days,
		Limit:   limit,
		Results: results,
	}, nil
}

// getHistory returns recent closes straight from the provider, bypassing
// the indicator pipeline; a failed fetch yields an empty point list, not
// an error.
func (s *Server) getHistory(c fuego.ContextNoBody) (HistoryResponse, error) {
	ticker := strings.ToUpper(c.PathParam("ticker"))
	days := c.QueryParamInt("days")
	if days < historyMin {
		days = historyMin
	}
	if days > historyMax {
		days = historyMax
	}

	resp := HistoryResponse{Ticker: ticker, Days: days, Points: []ClosePoint{}}

	ctx, cancel := context.WithTimeout(c.Context(), s.fetchTimeout)
	defer cancel()
	series, err := s.provider.Fetch(ctx, ticker, days)
	if err != nil {
		s.logger.Warn("history fetch failed", zap.String("ticker", ticker), zap.Error(err))
		return resp, nil
	}

	points := series.Points
	if len(points) > historyTail {
		points = points[len(points)-historyTail:]
	}
	for _, p := range points {
		if p.Close <= 0 {
			continue
		}
		resp.Points = append(resp.Points, ClosePoint{
			Date:  p.Date.Format("2006-01-02"),
			Close: p.Close,
		})
	}
	return resp, nil
}

// allowAllCORS mirrors the original service's permissive CORS policy so
// browser frontends can call the API directly.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

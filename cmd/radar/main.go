package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/joelpaulfernandez/Stock-Radar-App/internal/config"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/logging"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/notifier"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/provider"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/render"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/scheduler"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/screener"
	"github.com/joelpaulfernandez/Stock-Radar-App/internal/server"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "configs/config.yaml", "path to YAML config")
		tickersFlag = flag.String("tickers", "", "comma-separated tickers (default: built-in large caps)")
		daysFlag    = flag.Int("days", 0, "days of history to use (default from config)")
		limitFlag   = flag.Int("limit", 0, "how many top signals to show (default from config)")
		serve       = flag.Bool("serve", false, "run the HTTP API instead of a one-shot scan")
	)
	flag.Parse()

	logger, err := logging.New()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	path := *configPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *daysFlag > 0 {
		cfg.Screener.Days = *daysFlag
	}
	if *limitFlag > 0 {
		cfg.Screener.Limit = *limitFlag
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}

	prov := buildProvider(cfg)
	logger.Info("data source selected", zap.String("provider", prov.Name()))

	fetchTimeout := time.Duration(cfg.Screener.FetchTimeoutSec) * time.Second
	scr := screener.New(prov, logger, screener.Options{
		Workers:      cfg.Screener.Workers,
		FetchTimeout: fetchTimeout,
	})

	tickers := cfg.Screener.Tickers
	if *tickersFlag != "" {
		tickers = config.SplitTickers(*tickersFlag)
	}
	if len(tickers) == 0 {
		tickers = screener.DefaultUniverse
	}

	if !*serve {
		report, err := scr.Run(context.Background(), tickers, cfg.Screener.Days, cfg.Screener.Limit)
		if err != nil {
			logger.Fatal("screener run", zap.Error(err))
		}
		render.Table(os.Stdout, report.Results)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule.DailyCron != "" {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Provider.Proxy, logger)
		sched := scheduler.New(ctx, scr, tn, tickers, cfg.Screener.Days, cfg.Screener.Limit, logger)
		if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
			logger.Fatal("register daily scan", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
		if os.Getenv("RUN_ON_START") == "true" {
			go sched.RunNow()
		}
	}

	srv := server.New(cfg.Server.Addr, scr, prov, fetchTimeout, logger)
	go func() {
		logger.Info("HTTP API listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.Run(); err != nil {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}

func buildProvider(cfg *config.Config) provider.HistoryProvider {
	switch cfg.Provider.Source {
	case "alpaca":
		return provider.NewAlpacaProvider(cfg.Provider.AlpacaKeyID, cfg.Provider.AlpacaSecret)
	case "mock":
		return &provider.MockProvider{}
	default:
		return provider.NewYahooProvider(cfg.Provider.Proxy)
	}
}

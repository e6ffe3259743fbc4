package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/adshao/go-binance/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"marketscanner/internal/collector"
	"marketscanner/internal/config"
	"marketscanner/internal/notifier"
	"marketscanner/internal/planner"
	"marketscanner/internal/recorder"
	"marketscanner/internal/scheduler"
	"marketscanner/internal/server"
	"marketscanner/internal/store"
	"marketscanner/internal/stream"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("marketscanner starting")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fetchers
	col := collector.NewCollector(cfg.Planner.HistoryBars, logger)
	if len(cfg.Symbols.Crypto) > 0 {
		bf := collector.NewBinanceFetcher(binance.NewClient("", ""))
		col.Register(bf, cfg.Symbols.Crypto...)
		logger.Info("registered crypto symbols",
			zap.String("fetcher", bf.Name()), zap.Strings("symbols", cfg.Symbols.Crypto))
	}
	if len(cfg.Symbols.Equity) > 0 {
		sf := collector.NewSnapshotFetcher(cfg.Snapshot.BaseURL, cfg.Snapshot.APIKey, cfg.Proxy)
		col.Register(sf, cfg.Symbols.Equity...)
		logger.Info("registered equity symbols",
			zap.String("fetcher", sf.Name()), zap.Strings("symbols", cfg.Symbols.Equity))
	}

	st := store.NewLatest()

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLite(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoop()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoop()
	}

	// Telegram is optional; without credentials alerts are logged only.
	var tn *notifier.TelegramNotifier
	var summaryFn func(text string)
	disp := notifier.NewDispatcher(nil, rec, logger)
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
		disp = notifier.NewDispatcher(tn, rec, logger)
		summaryFn = func(text string) {
			if err := tn.SendWithRetry(ctx, text); err != nil {
				logger.Error("send summary", zap.Error(err))
			}
		}
	}

	sched := scheduler.New(col, st, rec, disp,
		cfg.Schedule.ScanCron, cfg.Schedule.SummaryCron, summaryFn, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand(ctx))
		logger.Info("telegram polling started")
	}

	if cfg.Stream.Enabled && len(cfg.Symbols.Crypto) > 0 {
		bs := stream.NewBinanceStream(cfg.Symbols.Crypto, st, logger)
		go bs.Run(ctx)
		logger.Info("binance stream started", zap.Strings("symbols", cfg.Symbols.Crypto))
	}

	srv := server.New(cfg.Server.Addr, st, planner.New(cfg.Planner.HorizonDays), logger)
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("http server", zap.Error(err))
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, scanning now")
		go sched.RunScanNow(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
	logger.Info("marketscanner stopped")
}

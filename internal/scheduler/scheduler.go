// Package scheduler runs the periodic scan cycle and handles bot commands.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"marketscanner/internal/collector"
	"marketscanner/internal/model"
	"marketscanner/internal/notifier"
	"marketscanner/internal/planner"
	"marketscanner/internal/recorder"
	"marketscanner/internal/store"
)

// Scheduler wires the collector, store, recorder and dispatcher into
// cron-driven scan cycles.
type Scheduler struct {
	cron       *cron.Cron
	collector  *collector.Collector
	store      *store.Latest
	recorder   recorder.Recorder
	dispatcher *notifier.Dispatcher
	logger     *zap.Logger

	scanSpec    string
	summarySpec string
	summaryFn   func(text string)
}

// New creates a Scheduler. summaryFn receives the formatted daily summary;
// pass nil to disable summary delivery.
func New(
	col *collector.Collector,
	st *store.Latest,
	rec recorder.Recorder,
	disp *notifier.Dispatcher,
	scanSpec, summarySpec string,
	summaryFn func(text string),
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		collector:   col,
		store:       st,
		recorder:    rec,
		dispatcher:  disp,
		logger:      logger,
		scanSpec:    scanSpec,
		summarySpec: summarySpec,
		summaryFn:   summaryFn,
	}
}

// Start registers the cron entries and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.scanSpec, func() { s.runScan(ctx) }); err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}
	if s.summarySpec != "" && s.summaryFn != nil {
		if _, err := s.cron.AddFunc(s.summarySpec, s.sendSummary); err != nil {
			return fmt.Errorf("register summary job: %w", err)
		}
	}
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("scan_cron", s.scanSpec),
		zap.String("summary_cron", s.summarySpec))
	return nil
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunScanNow runs one scan cycle immediately.
func (s *Scheduler) RunScanNow(ctx context.Context) []model.Signal {
	return s.runScan(ctx)
}

func (s *Scheduler) runScan(ctx context.Context) []model.Signal {
	started := time.Now()
	results := s.collector.Scan(ctx)

	signals := make([]model.Signal, 0, len(results))
	for _, res := range results {
		s.store.Put(res.Signal, res.Closes)
		signals = append(signals, res.Signal)
		if err := s.recorder.RecordSignal(res.Signal); err != nil {
			s.logger.Error("record signal",
				zap.String("symbol", res.Signal.Symbol), zap.Error(err))
		}
	}

	events := s.dispatcher.Dispatch(ctx, signals)

	elapsed := time.Since(started)
	if err := s.recorder.RecordScanCycle(len(signals), len(events), elapsed.Seconds()); err != nil {
		s.logger.Error("record scan cycle", zap.Error(err))
	}
	s.logger.Info("scan cycle complete",
		zap.Int("symbols", len(signals)),
		zap.Int("alerts", len(events)),
		zap.Duration("elapsed", elapsed))
	return signals
}

func (s *Scheduler) sendSummary() {
	signals := s.store.All()
	if len(signals) == 0 {
		return
	}
	s.summaryFn(notifier.FormatScanReport(signals))
}

// HandleCommand answers a bot command with a formatted reply.
func (s *Scheduler) HandleCommand(ctx context.Context) notifier.CommandHandler {
	return func(command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return ""
		}

		switch fields[0] {
		case "/signals", "/summary":
			return notifier.FormatScanReport(s.store.All())

		case "/scan":
			signals := s.RunScanNow(ctx)
			return notifier.FormatScanReport(signals)

		case "/signal":
			if len(fields) < 2 {
				return "Usage: /signal SYMBOL"
			}
			symbol := strings.ToUpper(fields[1])
			entry, ok := s.store.Get(symbol)
			if !ok {
				return fmt.Sprintf("No data for %s yet.", symbol)
			}
			return notifier.FormatSignalDetail(&entry.Signal)

		case "/potential":
			if len(fields) < 2 {
				return "Usage: /potential SYMBOL"
			}
			symbol := strings.ToUpper(fields[1])
			entry, ok := s.store.Get(symbol)
			if !ok {
				return fmt.Sprintf("No data for %s yet.", symbol)
			}
			score := planner.ScorePotential(symbol, entry.Closes, entry.Signal.Price)
			var b strings.Builder
			b.WriteString(fmt.Sprintf("🔭 <b>%s</b> potential: %.0f (%s)\n\n", symbol, score.Total, score.Grade))
			for _, f := range score.Factors {
				b.WriteString(fmt.Sprintf("• %s: %.2f — %s\n", f.Name, f.Weighted, f.Commentary))
			}
			return b.String()

		default:
			return "Commands:\n" +
				"/signals — latest signals\n" +
				"/scan — run a scan now\n" +
				"/signal SYMBOL — indicator detail\n" +
				"/potential SYMBOL — long-term potential score"
		}
	}
}

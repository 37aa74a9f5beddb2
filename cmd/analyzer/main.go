package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"TickerScope/internal/collector"
	"TickerScope/internal/config"
	"TickerScope/internal/exporter"
	"TickerScope/internal/logger"
	"TickerScope/internal/model"
	"TickerScope/internal/pipeline"
	"TickerScope/internal/recorder"
	"TickerScope/internal/scheduler"
	sig "TickerScope/internal/signal"
)

func main() {
	var (
		tickerFlag = flag.String("ticker", "", "stock ticker symbol (e.g. NVDA, RELIANCE.NS)")
		outputFlag = flag.String("output", "", "output file path")
		startFlag  = flag.String("start", "", "inclusive start date (YYYY-MM-DD)")
		endFlag    = flag.String("end", "", "inclusive end date (YYYY-MM-DD)")
		formatFlag = flag.String("format", "json", "output format: json or csv")
		configFlag = flag.String("config", "configs/config.yaml", "config file path")
		watchFlag  = flag.String("watch", "", "cron expression to re-run the analysis periodically")
	)
	flag.Parse()

	if *tickerFlag == "" || *outputFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -ticker SYMBOL -output PATH [-start D] [-end D] [-format json|csv] [-watch CRON]")
		os.Exit(2)
	}

	format, err := exporter.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	start, err := parseDate(*startFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start: %v\n", err)
		os.Exit(2)
	}
	end, err := parseDate(*endFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -end: %v\n", err)
		os.Exit(2)
	}

	cfgPath := *configFlag
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("config validation")
	}

	logger.Setup(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	var fetcher collector.Fetcher
	if cfg.DataSource.Provider == "mock" {
		fetcher = &collector.MockFetcher{Price: 100}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.Proxy)
	}
	logrus.WithField("source", fetcher.Name()).Info("data source initialized")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logrus.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	app := &analyzer{
		fetcher: fetcher,
		rec:     rec,
		period:  cfg.DataSource.Period,
		ticker:  *tickerFlag,
		output:  *outputFlag,
		format:  format,
		start:   start,
		end:     end,
	}

	watchCron := *watchFlag
	if watchCron == "" {
		watchCron = cfg.Schedule.WatchCron
	}
	if watchCron == "" {
		if err := app.run(); err != nil {
			logrus.WithError(err).Error("analysis failed")
			os.Exit(1)
		}
		return
	}

	// Watch mode: run once now, then on the cron schedule until interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.run(); err != nil {
		logrus.WithError(err).Error("initial analysis failed")
	}
	sched := scheduler.NewScheduler(ctx)
	if err := sched.Register(watchCron, app.run); err != nil {
		logrus.WithError(err).Fatal("register watch schedule")
	}
	sched.Start()
	defer sched.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logrus.Info("shutdown signal received, stopping")
}

type analyzer struct {
	fetcher collector.Fetcher
	rec     recorder.Recorder
	period  string
	ticker  string
	output  string
	format  exporter.Format
	start   *time.Time
	end     *time.Time
}

// run executes one full analysis cycle: fetch, filter, derive, persist,
// export.
func (a *analyzer) run() error {
	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"ticker": a.ticker, "run_id": runID})
	log.Info("starting analysis")

	bars, err := a.fetcher.FetchDailyBars(a.ticker, a.period)
	if err != nil {
		return fmt.Errorf("fetch price data: %w", err)
	}
	fundamentals, err := a.fetcher.FetchFundamentals(a.ticker)
	if err != nil {
		// Missing fundamentals is a normal, degraded path.
		log.WithError(err).Warn("fetch fundamentals failed, continuing without")
		fundamentals = nil
	}

	bars = filterBars(bars, a.start, a.end)
	fundamentals = filterFundamentals(fundamentals, a.start, a.end)
	if len(bars) == 0 {
		return fmt.Errorf("no price data available for %s in the requested range", a.ticker)
	}

	res := pipeline.Run(a.ticker, bars, fundamentals)
	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{"rule": w.Rule, "date": w.Date.Format(model.DateFormat)}).Warn(w.Message)
	}
	if len(res.Metrics) == 0 {
		return fmt.Errorf("no metrics calculated for %s", a.ticker)
	}

	golden := sig.DetectGoldenCrosses(res.Metrics)
	death := sig.DetectDeathCrosses(res.Metrics)
	events := append(golden, death...)

	if err := a.rec.SaveTicker(a.ticker, ""); err != nil {
		return fmt.Errorf("save ticker: %w", err)
	}
	if err := a.rec.SaveDailyMetrics(res.Metrics); err != nil {
		return fmt.Errorf("save daily metrics: %w", err)
	}
	if err := a.rec.SaveSignalEvents(events); err != nil {
		return fmt.Errorf("save signal events: %w", err)
	}

	doc := &model.Export{
		Ticker:       a.ticker,
		RunID:        runID,
		GeneratedAt:  time.Now(),
		PriceData:    bars,
		Fundamentals: fundamentals,
		DailyMetrics: res.Metrics,
		Signals:      events,
	}
	if err := exporter.Write(a.output, a.format, doc); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	log.WithFields(logrus.Fields{
		"rows":           len(res.Metrics),
		"golden_crosses": len(golden),
		"death_crosses":  len(death),
		"output":         a.output,
	}).Info("analysis complete")
	return nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func inRange(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

func filterBars(bars []model.PriceBar, start, end *time.Time) []model.PriceBar {
	if start == nil && end == nil {
		return bars
	}
	out := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		if inRange(b.Date, start, end) {
			out = append(out, b)
		}
	}
	return out
}

func filterFundamentals(funds []model.Fundamental, start, end *time.Time) []model.Fundamental {
	if start == nil && end == nil {
		return funds
	}
	out := make([]model.Fundamental, 0, len(funds))
	for _, f := range funds {
		if inRange(f.AsOf, start, end) {
			out = append(out, f)
		}
	}
	return out
}

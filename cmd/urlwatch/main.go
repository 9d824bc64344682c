package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/urlwatch/internal/config"
	"github.com/aleister1102/urlwatch/internal/differ"
	"github.com/aleister1102/urlwatch/internal/history"
	"github.com/aleister1102/urlwatch/internal/httpclient"
	"github.com/aleister1102/urlwatch/internal/logger"
	"github.com/aleister1102/urlwatch/internal/notifier"
	"github.com/aleister1102/urlwatch/internal/sdnotify"
	"github.com/aleister1102/urlwatch/internal/watcher"

	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(2)
	}

	// Load Global Configuration (path determined by -config flag)
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: %v", err)
	}

	appLogger, err := logger.NewLoggerBuilder().
		WithConfig(gCfg.LogConfig).
		WithOutputFile(flags.OutFile).
		WithLevel(flags.LogLevel).
		Build()
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger := *appLogger.GetZerolog()

	var code int
	if flags.History > 0 {
		code = printHistory(gCfg, flags)
	} else {
		code = run(gCfg, flags, zLogger)
	}
	_ = appLogger.Close()
	os.Exit(code)
}

func run(gCfg *config.GlobalConfig, flags AppFlags, zLogger zerolog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithTimeout(gCfg.WatchConfig.HTTPTimeout()).
		WithInsecureSkipVerify(gCfg.WatchConfig.InsecureSkipVerify).
		WithMaxRedirects(gCfg.WatchConfig.MaxRedirects).
		WithProxy(gCfg.WatchConfig.Proxy).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create HTTP client")
		return 1
	}

	fetcher := watcher.NewFetcher(httpClient, zLogger, watcher.FetcherConfig{
		UserAgent:      gCfg.WatchConfig.UserAgent,
		MaxContentSize: gCfg.WatchConfig.MaxContentSize,
	})

	var n watcher.Notifier
	if flags.DryRun {
		n = notifier.NewLogNotifier(flags.URL, zLogger)
	} else {
		n, err = notifier.NewCommandNotifier(gCfg.NotificationCommand(), flags.URL, zLogger)
		if err != nil {
			zLogger.Error().Err(err).Msg("Failed to create notifier")
			return 1
		}
	}

	opts := []watcher.Option{watcher.WithLifecycle(sdnotify.NewLifecycle(zLogger))}

	if gCfg.DiffConfig.Enabled {
		diffCfg := differ.DefaultDiffConfig()
		diffCfg.MaxSummaryLines = gCfg.DiffConfig.MaxSummaryLines
		opts = append(opts, watcher.WithDiffer(differ.NewContentDiffer(diffCfg, zLogger)))
	}

	if gCfg.HistoryConfig.Enabled {
		store, err := history.NewStore(gCfg.HistoryConfig.SQLitePath, zLogger)
		if err != nil {
			// History is an audit trail; watching still works without it.
			zLogger.Error().Err(err).Msg("Failed to open history database, continuing without history")
		} else {
			defer func() { _ = store.Close() }()
			opts = append(opts, watcher.WithRecorder(store))
		}
	}

	watchCfg := watcher.Config{
		Target:         flags.URL,
		Interval:       gCfg.WatchConfig.CheckInterval(),
		StartupDelay:   gCfg.WatchConfig.StartupDelay(),
		CompareContent: gCfg.WatchConfig.CompareContent,
	}
	if flags.IntervalSet {
		watchCfg.Interval = flags.Interval
	}
	if flags.StartupDelaySet {
		watchCfg.StartupDelay = flags.StartupDelay
	}

	w, err := watcher.New(watchCfg, fetcher, n, zLogger, opts...)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create watcher")
		return 1
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zLogger.Error().Err(err).Msg("Watcher stopped unexpectedly")
		return 1
	}
	return 0
}

func printHistory(gCfg *config.GlobalConfig, flags AppFlags) int {
	store, err := history.NewStore(gCfg.HistoryConfig.SQLitePath, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), flags.URL, flags.History)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		return 1
	}
	for _, e := range entries {
		notified := ""
		if e.Notified {
			notified = " notified"
		}
		fmt.Printf("%s %-12s %3d etag=%q last_modified=%q%s\n",
			e.CheckedAt.Format(time.DateTime), e.Outcome, e.StatusCode, e.ETag, e.LastModified, notified)
		if e.Detail != "" {
			fmt.Printf("    %s\n", e.Detail)
		}
	}
	return 0
}

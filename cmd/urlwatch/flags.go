package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/go-playground/validator/v10"
)

// AppFlags holds the parsed command line.
type AppFlags struct {
	URL              string
	OutFile          string
	GlobalConfigFile string
	LogLevel         string
	DryRun           bool
	// Interval and StartupDelay override the config file only when set.
	Interval        time.Duration
	IntervalSet     bool
	StartupDelay    time.Duration
	StartupDelaySet bool
	// History prints the last N recorded polls for URL and exits when positive.
	History int
}

// ParseFlags parses args (without the program name). Usage and parse errors go to output.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("urlwatch", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: urlwatch [flags] <url>")
		fmt.Fprintln(fs.Output(), "Notify when a URL changes.")
		fs.PrintDefaults()
	}

	outFile := fs.String("outfile", "", "Write logs to this file (rotated) instead of standard output.")
	outFileAlias := fs.String("o", "", "Alias for -outfile")

	globalConfigFile := fs.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	interval := fs.Duration("interval", 0, "Pause between polls, e.g. 30m (overrides config file if set)")
	startupDelay := fs.Duration("startup-delay", 0, "Pause before the startup notification (overrides config file if set)")
	logLevel := fs.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config file if set)")
	dryRun := fs.Bool("dry-run", false, "Log notifications instead of running the notification command")
	historyLimit := fs.Int("history", 0, "Print the last N recorded polls for the URL and exit")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		LogLevel:     *logLevel,
		DryRun:       *dryRun,
		Interval:     *interval,
		StartupDelay: *startupDelay,
		History:      *historyLimit,
	}

	if *outFile != "" {
		flags.OutFile = *outFile
	} else if *outFileAlias != "" {
		flags.OutFile = *outFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			flags.IntervalSet = true
		case "startup-delay":
			flags.StartupDelaySet = true
		}
	})

	switch fs.NArg() {
	case 0:
		return AppFlags{}, common.NewValidationError("url", "", "a URL to watch is required")
	case 1:
		flags.URL = fs.Arg(0)
	default:
		return AppFlags{}, common.NewValidationError("url", fs.Args(), "multiple URLs not supported")
	}

	if err := validator.New().Var(flags.URL, "required,http_url"); err != nil {
		return AppFlags{}, common.NewValidationError("url", flags.URL, "must be an absolute http or https URL")
	}
	if flags.IntervalSet && flags.Interval < time.Second {
		return AppFlags{}, common.NewValidationError("interval", flags.Interval, "must be at least 1s")
	}
	if flags.StartupDelaySet && flags.StartupDelay < 0 {
		return AppFlags{}, common.NewValidationError("startup-delay", flags.StartupDelay, "cannot be negative")
	}
	if flags.History < 0 {
		return AppFlags{}, common.NewValidationError("history", flags.History, "cannot be negative")
	}

	return flags, nil
}

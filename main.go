package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shazow/wifimport/importer"
	"github.com/shazow/wifimport/internal/config"
	"github.com/shazow/wifimport/internal/log"
	"github.com/shazow/wifimport/internal/tui"
	"github.com/shazow/wifimport/wifi"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

const debugLogFile = "wifimport-debug.log"

// app is what the subcommands share once flags and config are resolved.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	logs     *log.RingHandler
	importer *importer.Importer
}

func (a *app) backend() (wifi.Backend, error) {
	b, err := GetBackend(a.logger, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend: %w", err)
	}
	a.logger.Debug("using backend", "backend", b.Name())
	return b, nil
}

// isSubcommand reports whether the parsed args picked a subcommand rather
// than the TUI.
func isSubcommand(root *ffcli.Command) bool {
	args := root.FlagSet.Args()
	if len(args) == 0 {
		return false
	}
	for _, sub := range root.Subcommands {
		if strings.EqualFold(args[0], sub.Name) {
			return true
		}
	}
	return false
}

func csvArg(args []string) (importer.Source, error) {
	if len(args) != 1 {
		return nil, errors.New("expected exactly one CSV file")
	}
	return importer.FileSource(args[0]), nil
}

// main is the entry point of the application
func main() {
	var (
		rootFlagSet = flag.NewFlagSet("wifimport", flag.ExitOnError)
		configPath  = rootFlagSet.String("config", "", "path to config toml file (env: WIFIMPORT_CONFIG)")
		theme       = rootFlagSet.String("theme", "", "path to theme toml file (env: WIFIMPORT_THEME)")
		backendName = rootFlagSet.String("backend", "auto", "network backend: auto, networkmanager, iwd, darwin (env: WIFIMPORT_BACKEND)")
		logLevel    = rootFlagSet.String("log-level", "info", "log level: debug, info, warn, error")
		logFormat   = rootFlagSet.String("log-format", "text", "log format: text, json")
		debug       = rootFlagSet.Bool("debug", false, "write debug logs to "+debugLogFile+" in the TUI")
		version     = rootFlagSet.Bool("version", false, "display version")
	)

	a := &app{}

	checkFlagSet := flag.NewFlagSet("check", flag.ExitOnError)
	checkJSON := checkFlagSet.Bool("json", false, "output in JSON format")
	checkCmd := &ffcli.Command{
		Name:       "check",
		ShortUsage: "wifimport check [--json] <file.csv>",
		ShortHelp:  "Validate a CSV file without adding any networks",
		FlagSet:    checkFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			src, err := csvArg(args)
			if err != nil {
				return err
			}
			return runCheck(os.Stdout, *checkJSON, a.importer, src)
		},
	}

	importFlagSet := flag.NewFlagSet("import", flag.ExitOnError)
	importJSON := importFlagSet.Bool("json", false, "output in JSON format")
	importErrors := importFlagSet.Bool("errors", false, "print every error")
	importCmd := &ffcli.Command{
		Name:       "import",
		ShortUsage: "wifimport import [--errors] [--json] <file.csv>",
		ShortHelp:  "Add every network from a CSV file in one go",
		FlagSet:    importFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			src, err := csvArg(args)
			if err != nil {
				return err
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			return runImport(os.Stdout, *importJSON, *importErrors, a.importer, b, src)
		},
	}

	batchFlagSet := flag.NewFlagSet("batch", flag.ExitOnError)
	batchYes := batchFlagSet.Bool("yes", false, "don't wait between batches")
	batchCmd := &ffcli.Command{
		Name:       "batch",
		ShortUsage: "wifimport batch [--yes] <file.csv>",
		ShortHelp:  fmt.Sprintf("Propose networks from a CSV file, %d at a time", importer.BatchSize),
		FlagSet:    batchFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			src, err := csvArg(args)
			if err != nil {
				return err
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			return runBatch(os.Stdout, os.Stdin, *batchYes, a.importer, b, src)
		},
	}

	qrFlagSet := flag.NewFlagSet("qr", flag.ExitOnError)
	qrSSID := qrFlagSet.String("ssid", "", "only show this network")
	qrCmd := &ffcli.Command{
		Name:       "qr",
		ShortUsage: "wifimport qr [--ssid name] <file.csv>",
		ShortHelp:  "Print join QR codes for the networks in a CSV file",
		FlagSet:    qrFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			src, err := csvArg(args)
			if err != nil {
				return err
			}
			return runQR(os.Stdout, *qrSSID, a.importer, src)
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "wifimport [flags] [file.csv] | <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("WIFIMPORT")},
		Subcommands: []*ffcli.Command{checkCmd, importCmd, batchCmd, qrCmd},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) > 1 {
				return flag.ErrHelp
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if err := tui.LoadThemeFile(a.cfg.Theme); err != nil {
				return fmt.Errorf("error loading theme: %w", err)
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			return tui.Run(b, a.importer, a.logs, path)
		},
	}

	if err := root.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	// Flags that were set explicitly win over the config file.
	rootFlagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backendName
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "theme":
			cfg.Theme = *theme
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	a.cfg = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	var logOutput io.Writer = os.Stderr
	if !isSubcommand(root) {
		// The TUI owns the terminal, so logs go to a file or nowhere.
		logOutput = io.Discard
		if *debug {
			f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error opening debug log: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			logOutput = f
			level = slog.LevelDebug
		}
	}
	a.logger, a.logs, err = log.Setup(logOutput, level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	a.importer = importer.New(a.logger)

	if err := root.Run(context.Background()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// Run already printed the usage.
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/statscrape/internal/config"
	"github.com/pfrederiksen/statscrape/internal/fetch"
	"github.com/pfrederiksen/statscrape/internal/jsondoc"
	"github.com/pfrederiksen/statscrape/internal/logger"
	"github.com/pfrederiksen/statscrape/internal/scraper"
	"github.com/pfrederiksen/statscrape/internal/table"
)

const (
	ExitSuccess        = 0
	ExitError          = 1
	ExitTableNotFound  = 2
	ExitFetchFailure   = 3
	ExitUnexpectedJSON = 4
	ExitMisalignment   = 5
)

// app carries the state shared by every subcommand
type app struct {
	configPath string
	verbose    bool

	cfg config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Scrape NFL and stock tables and convert units",
		Long: `A CLI tool that extracts NFL touchdown leaders, Super Bowl champions and
stock price history from public web pages, and converts between units.
Results are printed as comma-separated lines on standard output.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: XDG config dir)")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		a.newTouchdownsCmd(),
		a.newSuperBowlCmd(),
		a.newStockCmd(),
		newConvertCmd(),
		a.newInspectCmd(),
	)

	return cmd
}

// setup loads configuration and installs the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logger.LevelDebug
	if !a.verbose {
		level, err = logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	logger.ResetMetrics()

	logger.Debug("configuration loaded", logger.Fields{
		"path":    a.configPath,
		"timeout": cfg.HTTP.Timeout.String(),
	})
	return nil
}

// fetcher builds a fetcher sending the global headers overlaid with headers
func (a *app) fetcher(headers map[string]string) *fetch.Fetcher {
	return fetch.New(fetch.Options{
		Timeout:          a.cfg.HTTP.Timeout,
		Headers:          a.cfg.HTTP.HeadersWith(headers),
		BrowserTransport: a.cfg.HTTP.BrowserTransport,
	})
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	var notFound *scraper.NotFoundError
	var fetchErr *fetch.Error

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &notFound), errors.Is(err, table.ErrNoUsableTable):
		return ExitTableNotFound
	case errors.Is(err, table.ErrColumnMisalignment):
		return ExitMisalignment
	case errors.Is(err, jsondoc.ErrUnexpected):
		return ExitUnexpectedJSON
	case errors.As(err, &fetchErr):
		return ExitFetchFailure
	default:
		return ExitError
	}
}

// Run executes the CLI with args and returns the exit status
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

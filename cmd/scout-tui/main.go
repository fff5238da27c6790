package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/cloudy-poro/scout/internal/app"
	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/config"
	"github.com/cloudy-poro/scout/internal/fixtures"
	"github.com/cloudy-poro/scout/internal/logging"
	"github.com/cloudy-poro/scout/internal/progress"
)

type options struct {
	configPath string
	logFile    string
	verbosity  int
	mock       bool
	wsURL      string
	apiURL     string
	ourTeam    string
	theme      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

func buildRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scout-tui",
		Short:         "Terminal dashboard for opponent scouting reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "scout.yaml", "Path to config file")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	f.IntVarP(&opts.verbosity, "verbose", "v", 0, "Log verbosity")
	f.BoolVar(&opts.mock, "mock", false, "Simulate report generation instead of dialing the backend")
	f.StringVar(&opts.wsURL, "ws-url", "", "Override the report websocket URL")
	f.StringVar(&opts.apiURL, "api-url", "", "Override the REST API base URL")
	f.StringVar(&opts.ourTeam, "our-team", "", "Override the team sent as matchup context")
	f.StringVar(&opts.theme, "theme", "", "Report theme: dark or light")

	cmd.AddCommand(newGenerateCmd(opts))
	return cmd
}

// loadConfig resolves file, then env, then flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("mock") {
		cfg.Report.UseMock = opts.mock
	}
	if opts.wsURL != "" {
		cfg.Report.WSURL = opts.wsURL
		// Without an explicit API URL, the REST API lives next to the websocket.
		if opts.apiURL == "" {
			base, err := config.APIBaseFromWS(opts.wsURL)
			if err != nil {
				return nil, fmt.Errorf("--ws-url: %w", err)
			}
			cfg.API.BaseURL = base
		}
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.ourTeam != "" {
		cfg.Report.OurTeam = opts.ourTeam
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if f.Changed("verbose") {
		cfg.Log.Verbosity = opts.verbosity
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	return cfg, cfg.Validate()
}

func newTracker(cfg *config.Config, log logr.Logger) *progress.Client {
	return progress.New(cfg.ProgressConfig(), progress.WithLogger(log))
}

// newFetcher serves fixture reports in mock mode so the dashboard runs
// without a backend.
func newFetcher(cfg *config.Config) app.Fetcher {
	if cfg.Report.UseMock {
		return fixtures.NewFetcher(cfg.Server.AnalysisDelay)
	}
	return client.NewHTTPClient(cfg.API.BaseURL, cfg.Report.OurTeam, cfg.API.Timeout)
}

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, closer, err := logging.ToFile(cfg.Log.File, cfg.Log.Verbosity)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()
	log.Info("starting", "mock", cfg.Report.UseMock, "theme", cfg.UI.Theme, "ws", cfg.Report.WSURL, "api", cfg.API.BaseURL)

	tracker := newTracker(cfg, log)
	defer tracker.Disconnect()
	m := app.New(tracker, newFetcher(cfg), cfg.ProgressConfig(), log, app.WithStyle(cfg.UI.Theme))
	p := tea.NewProgram(m, tea.WithAltScreen())
	start := time.Now()
	if _, err := p.Run(); err != nil {
		return err
	}
	log.Info("exiting", "uptime", time.Since(start).String())
	return nil
}

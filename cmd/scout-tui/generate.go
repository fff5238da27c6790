package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cloudy-poro/scout/internal/logging"
	"github.com/cloudy-poro/scout/internal/progress"
)

var errReportFailed = errors.New("report generation failed")

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <team>",
		Short: "Generate one report and print progress as plain lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.Log.Verbosity)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tracker := newTracker(cfg, log)
			last, err := generate(ctx, tracker, args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if last.Status != progress.StatusCompleted {
				return errReportFailed
			}
			return nil
		},
	}
}

// reportTracker is the subset of *progress.Client that generate drives.
type reportTracker interface {
	Connect(team string) error
	Disconnect()
	OnProgress(cb progress.Callback)
}

// generate runs one session for team, printing every update to w, and
// returns the terminal update.
func generate(ctx context.Context, t reportTracker, team string, w io.Writer) (progress.ReportProgress, error) {
	done := make(chan progress.ReportProgress, 1)
	t.OnProgress(func(p progress.ReportProgress) {
		printUpdate(w, p)
		if p.Status.Terminal() {
			done <- p
		}
	})
	defer t.Disconnect()

	if err := t.Connect(team); err != nil {
		return progress.ReportProgress{}, err
	}
	select {
	case p := <-done:
		return p, nil
	case <-ctx.Done():
		return progress.ReportProgress{}, ctx.Err()
	}
}

func printUpdate(w io.Writer, p progress.ReportProgress) {
	var status string
	switch p.Status {
	case progress.StatusConnecting:
		status = color.MagentaString("%-10s", p.Status)
	case progress.StatusProcessing:
		status = color.CyanString("%-10s", p.Status)
	case progress.StatusCompleted:
		status = color.GreenString("%-10s", p.Status)
	case progress.StatusError:
		status = color.RedString("%-10s", p.Status)
	default:
		status = fmt.Sprintf("%-10s", p.Status)
	}
	fmt.Fprintf(w, "%s %3d%%  %s\n", status, p.Progress, p.Message)
}

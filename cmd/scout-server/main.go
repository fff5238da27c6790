package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cloudy-poro/scout/internal/config"
	"github.com/cloudy-poro/scout/internal/logging"
	"github.com/cloudy-poro/scout/internal/progress"
	"github.com/cloudy-poro/scout/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       int
		scale      float64
		verbosity  int
	)
	cmd := &cobra.Command{
		Use:           "scout-server",
		Short:         "Simulated report backend for local development",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("scale") {
				cfg.Server.ScriptScale = scale
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbosity
			}
			if cfg.Server.ScriptScale < 0 {
				return fmt.Errorf("scale must not be negative, got %v", cfg.Server.ScriptScale)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "scout.yaml", "Path to config file")
	cmd.Flags().IntVar(&port, "port", 0, "Override server port")
	cmd.Flags().Float64Var(&scale, "scale", 1, "Multiply every scripted delay by this factor")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "Log verbosity")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.New(os.Stderr, cfg.Log.Verbosity)

	s := server.New(log, server.Options{
		Script:         progress.DefaultScript().Scale(cfg.Server.ScriptScale),
		AnalysisDelay:  cfg.Server.AnalysisDelay,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "scale", cfg.Server.ScriptScale)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

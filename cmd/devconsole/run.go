package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/devconsole"
	"pkt.systems/devconsole/internal/appconfig"
	"pkt.systems/devconsole/internal/host"
	"pkt.systems/devconsole/internal/hostlog"
	"pkt.systems/devconsole/internal/termconsole"
	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

func newRunCmd(cfgPath *string) *cobra.Command {
	var disableAuditTrails bool
	var forwardHostLogs bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo host with the console on this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(*cfgPath)
			if err != nil {
				return err
			}
			if disableAuditTrails {
				cfg.Logging.DisableAuditTrails = true
			}
			if forwardHostLogs {
				cfg.Console.ForwardHostLogs = true
			}

			logFile, err := openLogFile(cfg.Logging.File)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			// The terminal owns stdout, so logs go to the file and, when
			// enabled, into the console itself.
			forwarder := hostlog.NewForwarder(nil)
			logger := pslog.LoggerFromEnv(
				pslog.WithEnvWriter(io.MultiWriter(logFile, forwarder)),
				pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
			)
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)
			log.SetOutput(pslog.LogLogger(logger).Writer())

			clock := host.NewClock(cfg.Host.TimeScale)
			console := devconsole.New(ctx, devconsole.Config{
				StartVisible:        cfg.Console.StartVisible,
				ForwardHostLogs:     cfg.Console.ForwardHostLogs,
				DisableAuditLogging: cfg.Logging.DisableAuditTrails,
			}, devconsole.Deps{
				TimeScaler: clock,
				HostLogs:   forwarder,
			})
			console.Discover(&host.App{Clock: clock, HostLogs: console, Console: console})
			console.Log(fmt.Sprintf("devconsole ready, type help for commands (log file %s)", cfg.Logging.File), schema.SeveritySystem)

			term := termconsole.New(console, clock, cmd.InOrStdin(), cmd.OutOrStdout(), termconsole.Config{
				Prompt:          cfg.Console.Prompt,
				Theme:           schema.ThemeName(cfg.Terminal.Theme),
				ScrollbackLines: cfg.Terminal.ScrollbackLines,
				FrameInterval:   time.Duration(cfg.Terminal.FrameIntervalMS) * time.Millisecond,
				SuggestionLines: cfg.Terminal.SuggestionLines,
			})
			logger.Info("devconsole run start", "config", *cfgPath, "session", console.ID())
			if err := term.Run(ctx); err != nil {
				return err
			}
			logger.Info("devconsole run stop", "elapsed", clock.Elapsed(), "frames", clock.Frames())
			return nil
		},
	}
	cmd.Flags().BoolVar(&disableAuditTrails, "disable-audit-trails", false, "disable audit trail logging for commands")
	cmd.Flags().BoolVar(&forwardHostLogs, "forward-host-logs", false, "forward host logs into the console")
	return cmd
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

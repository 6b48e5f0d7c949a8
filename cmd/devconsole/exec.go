package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/devconsole"
	"pkt.systems/devconsole/internal/appconfig"
	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/internal/format"
	"pkt.systems/devconsole/internal/host"
)

func newExecCmd(cfgPath *string) *cobra.Command {
	var timestamps bool
	cmd := &cobra.Command{
		Use:   "exec [line...]",
		Short: "Dispatch command lines and print the console output",
		Long:  "Dispatch each argument as one command line. Without arguments, lines are read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(*cfgPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			clock := host.NewClock(cfg.Host.TimeScale)
			console := devconsole.New(ctx, devconsole.Config{
				StartVisible:        true,
				DisableAuditLogging: cfg.Logging.DisableAuditTrails,
			}, devconsole.Deps{TimeScaler: clock})
			console.Discover(&host.App{Clock: clock, HostLogs: console, Console: console})

			renderer := format.NewPlainRenderer()
			renderer.Timestamps = timestamps
			out := cmd.OutOrStdout()
			cancel := console.Subscribe(func(ev eventbus.Event) {
				for _, line := range renderer.FormatEvent(ev) {
					_, _ = fmt.Fprintln(out, line)
				}
			})
			defer cancel()

			lines := args
			if len(lines) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					lines = append(lines, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			var errs []error
			for _, line := range lines {
				if _, err := console.Submit(ctx, line); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "prefix output lines with HH:MM timestamps")
	return cmd
}

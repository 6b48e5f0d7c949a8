package host

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/devconsole/internal/command"
	"pkt.systems/devconsole/internal/version"
	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

// HostLogs toggles forwarding of host logs into the console.
type HostLogs interface {
	SetForwardHostLogs(enabled bool)
	ForwardHostLogs() bool
}

// Logger publishes console entries.
type Logger interface {
	Log(text string, severity schema.Severity)
}

// App contributes the demo host's commands.
type App struct {
	Clock    *Clock
	HostLogs HostLogs
	Console  Logger
}

// Commands implements command.Provider.
func (a *App) Commands() []command.Spec {
	specs := []command.Spec{
		{
			Name:        "version",
			Description: "Print the host version",
			Handler:     command.StringHandler(func([]string) string { return version.String() }),
		},
	}
	if a.Clock != nil {
		specs = append(specs, command.Spec{
			Name:        "uptime",
			Description: "Show scaled and real host time",
			Handler:     command.StringHandler(func([]string) string { return a.Clock.uptime() }),
		})
	}
	if a.HostLogs != nil {
		specs = append(specs, command.Spec{
			Name:        "host-logs",
			Description: "Forward host logs into the console (host-logs [on|off])",
			Handler:     a.hostLogs,
		})
	}
	if a.Console != nil {
		specs = append(specs, command.Spec{
			Name:        "log",
			Description: "Write a console entry (log <user|system|warning|error> <text>)",
			Handler:     a.log,
		})
	}
	return specs
}

func (a *App) hostLogs(ctx context.Context, args []string) command.Result {
	switch len(args) {
	case 0:
		if a.HostLogs.ForwardHostLogs() {
			return command.OK("host logs: on")
		}
		return command.OK("host logs: off")
	case 1:
	default:
		return command.InvalidArgs(command.ResultTooManyArguments)
	}
	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		enabled = true
	case "off", "false", "0":
		enabled = false
	default:
		return command.InvalidArgs("usage: host-logs [on|off]")
	}
	a.HostLogs.SetForwardHostLogs(enabled)
	pslog.Ctx(ctx).Info("host logs toggled", "enabled", enabled)
	return command.OK(command.ResultSuccessful)
}

func (a *App) log(_ context.Context, args []string) command.Result {
	if len(args) < 2 {
		return command.InvalidArgs("usage: log <user|system|warning|error> <text>")
	}
	severity, ok := schema.ParseSeverity(args[0])
	if !ok {
		return command.InvalidArgs(fmt.Sprintf("unknown severity %q", args[0]))
	}
	a.Console.Log(strings.Join(args[1:], " "), severity)
	return command.Result{}
}

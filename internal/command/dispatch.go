package command

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/internal/logx"
	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

// DispatcherConfig configures command dispatch.
type DispatcherConfig struct {
	DisableAuditLogging bool
}

// Dispatcher parses command lines, runs the matching handler and publishes
// the echo and any output to the console broadcast.
type Dispatcher struct {
	registry *Registry
	out      eventbus.Publisher
	cfg      DispatcherConfig
}

// NewDispatcher constructs a dispatcher over registry publishing to out.
func NewDispatcher(registry *Registry, out eventbus.Publisher, cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		out:      out,
		cfg:      cfg,
	}
}

// Execute runs one command line. "clear" only publishes a clear event. Any
// other line is echoed as a user entry before its handler runs; non-empty
// output is published as a system entry, or an error entry for failures.
//
// The returned error reports dispatch problems (blank line, unknown command,
// recovered panic). Handler rejections travel in the Result.
func (d *Dispatcher) Execute(ctx context.Context, input string) (Result, error) {
	if ctx == nil {
		return Result{}, schema.ErrMissingContext
	}
	log := pslog.Ctx(ctx)
	line, ok := Parse(input)
	if !ok {
		log.Warn("console command rejected", "reason", "empty")
		return Result{}, schema.ErrEmptyCommand
	}
	if !d.cfg.DisableAuditLogging {
		log.Debug("audit command", "command_type", "console", "command", strings.TrimSpace(input))
	}
	log = logx.WithCommand(ctx, line.Name).With("args", len(line.Args))

	if line.Name == ClearCommand {
		log.Info("console clear request")
		d.out.Clear()
		return Result{}, nil
	}

	d.out.Log(input, schema.SeverityUser)
	spec, found := d.registry.Lookup(string(line.Name))
	if !found {
		log.Warn("console command rejected", "reason", "unknown")
		d.out.Log(fmt.Sprintf("Command '%s' does not exist.", line.Name), schema.SeveritySystem)
		return Result{}, fmt.Errorf("%w: %s", schema.ErrUnknownCommand, line.Name)
	}

	log.Info("console command dispatch")
	ctx = logx.ContextWithCommandLogger(ctx, log, line.Name)
	result, err := invoke(ctx, spec, line.Args)
	if err != nil {
		log.Error("console command panicked", "err", err)
		d.out.Log(result.Text, schema.SeverityError)
		return result, err
	}
	switch {
	case result.Text == "":
	case result.Kind == ResultFailed:
		d.out.Log(result.Text, schema.SeverityError)
	default:
		d.out.Log(result.Text, schema.SeveritySystem)
	}
	if result.Kind == ResultOK {
		log.Info("console command completed", "output", result.Text != "")
	} else {
		log.Warn("console command completed", "result", result.Kind.String(), "output", result.Text != "")
	}
	return result, nil
}

func invoke(ctx context.Context, spec Spec, args []string) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", schema.ErrCommandPanicked, spec.Name, rec)
			result = Result{Kind: ResultFailed, Text: fmt.Sprintf("Command '%s' failed: %v", spec.Name, rec)}
		}
	}()
	return spec.Handler(ctx, args), nil
}

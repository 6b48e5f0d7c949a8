// Package devconsole is an in-process developer console: named commands, a
// dispatcher for typed command lines, a broadcast of console output and an
// input session with history and autocompletion.
package devconsole

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"pkt.systems/devconsole/internal/command"
	"pkt.systems/devconsole/internal/eventbus"
	"pkt.systems/devconsole/internal/hostlog"
	"pkt.systems/devconsole/internal/logx"
	"pkt.systems/devconsole/internal/session"
	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

// Config configures a Console.
type Config struct {
	// SessionID annotates logs; a random id is used when empty.
	SessionID           schema.SessionID
	StartVisible        bool
	ForwardHostLogs     bool
	DisableAuditLogging bool
}

// Deps are optional collaborators supplied by the host.
type Deps struct {
	// TimeScaler receives time-scale changes.
	TimeScaler command.TimeScaler
	// HostLogs, when set, is attached to the console bus and toggled by
	// SetForwardHostLogs. The host points its logger at it; records logged
	// by the console itself carry its session id and are not forwarded.
	HostLogs *hostlog.Forwarder
}

// Console wires the registry, dispatcher, broadcast and input session.
type Console struct {
	id         schema.SessionID
	log        pslog.Logger
	registry   *command.Registry
	dispatcher *command.Dispatcher
	bus        *eventbus.Bus
	session    *session.Session
	hostLogs   *hostlog.Forwarder

	mu      sync.Mutex
	visible bool
}

// New constructs a Console with the built-in commands registered. The
// logger is taken from ctx.
func New(ctx context.Context, cfg Config, deps Deps) *Console {
	if ctx == nil {
		ctx = context.Background()
	}
	id := cfg.SessionID
	if id == "" {
		id = schema.SessionID(uuid.NewString())
	}
	log := logx.WithSession(ctx, id)
	bus := eventbus.New(log)
	registry := command.NewRegistry(log)
	c := &Console{
		id:         id,
		log:        log,
		registry:   registry,
		dispatcher: command.NewDispatcher(registry, bus, command.DispatcherConfig{DisableAuditLogging: cfg.DisableAuditLogging}),
		bus:        bus,
		hostLogs:   deps.HostLogs,
		visible:    cfg.StartVisible,
	}
	c.session = session.New(id, registry, c)
	if c.hostLogs == nil {
		c.hostLogs = hostlog.NewForwarder(nil)
	}
	c.hostLogs.Attach(bus)
	c.hostLogs.IgnoreSession(id)
	c.hostLogs.SetEnabled(cfg.ForwardHostLogs)
	command.Discover(registry, command.ProviderFunc(func() []command.Spec {
		return command.Builtins(registry, deps.TimeScaler)
	}))
	log.Info("console ready", "commands", registry.Len(), "visible", cfg.StartVisible, "forward_host_logs", cfg.ForwardHostLogs)
	return c
}

// ID returns the console session id.
func (c *Console) ID() schema.SessionID {
	return c.id
}

// Registry returns the command registry.
func (c *Console) Registry() *command.Registry {
	return c.registry
}

// Session returns the input session.
func (c *Console) Session() *session.Session {
	return c.session
}

// Register adds commands. Every rejection is returned, joined.
func (c *Console) Register(specs ...command.Spec) error {
	var errs []error
	for _, spec := range specs {
		if err := c.registry.Register(spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discover registers commands from providers; rejected specs are skipped.
func (c *Console) Discover(providers ...command.Provider) int {
	return command.Discover(c.registry, providers...)
}

// Execute dispatches one command line without touching input history.
func (c *Console) Execute(ctx context.Context, line string) (command.Result, error) {
	if ctx == nil {
		return command.Result{}, schema.ErrMissingContext
	}
	if _, ok := logx.SessionFromContext(ctx); !ok {
		ctx = logx.ContextWithSessionLogger(ctx, c.log, c.id)
	}
	return c.dispatcher.Execute(ctx, line)
}

// Submit sends line through the input session, recording it in history.
func (c *Console) Submit(ctx context.Context, line string) (command.Result, error) {
	return c.session.Submit(ctx, line)
}

// Log publishes an entry to every subscriber.
func (c *Console) Log(text string, severity schema.Severity) {
	c.bus.Log(text, severity)
}

// Clear publishes a clear event.
func (c *Console) Clear() {
	c.bus.Clear()
}

// Subscribe registers fn for console events and returns its cancel func.
func (c *Console) Subscribe(fn func(eventbus.Event)) func() {
	return c.bus.Subscribe(fn)
}

// Show makes the console visible and clears the input line.
func (c *Console) Show() {
	c.mu.Lock()
	c.visible = true
	c.mu.Unlock()
	c.session.Reset()
	c.log.Debug("console shown")
}

// Hide hides the console. Input and history are kept.
func (c *Console) Hide() {
	c.mu.Lock()
	c.visible = false
	c.mu.Unlock()
	c.log.Debug("console hidden")
}

// Toggle flips visibility and reports the new state.
func (c *Console) Toggle() bool {
	if c.Visible() {
		c.Hide()
		return false
	}
	c.Show()
	return true
}

// Visible reports whether the console is shown.
func (c *Console) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// SetForwardHostLogs toggles forwarding of host log output into the console.
func (c *Console) SetForwardHostLogs(enabled bool) {
	c.hostLogs.SetEnabled(enabled)
	c.log.Info("console host log forwarding", "enabled", enabled)
}

// ForwardHostLogs reports whether host log output is forwarded.
func (c *Console) ForwardHostLogs() bool {
	return c.hostLogs.Enabled()
}

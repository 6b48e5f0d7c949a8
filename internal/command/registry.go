package command

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"

	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

// ClearCommand is handled by the dispatcher and can never be registered.
const ClearCommand schema.CommandName = "clear"

// Registry maps lower-case command names to specs. The first registration
// of a name wins.
type Registry struct {
	mu    sync.RWMutex
	specs map[schema.CommandName]Spec
	order []schema.CommandName
	log   pslog.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger pslog.Logger) *Registry {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Registry{
		specs: make(map[schema.CommandName]Spec),
		log:   logger,
	}
}

// Register adds spec under its normalized name. A duplicate is logged as a
// warning and rejected with ErrDuplicateCommand; the existing spec stays.
func (r *Registry) Register(spec Spec) error {
	name, err := schema.NormalizeCommandName(string(spec.Name))
	if err != nil {
		r.log.Warn("console command rejected", "reason", "invalid name", "name", spec.Name)
		return err
	}
	log := r.log.With("command", name)
	if spec.Handler == nil {
		log.Warn("console command rejected", "reason", "missing handler")
		return fmt.Errorf("%w: %s has no handler", schema.ErrInvalidCommand, name)
	}
	if name == ClearCommand {
		log.Warn("console command rejected", "reason", "reserved")
		return fmt.Errorf("%w: %s", schema.ErrReservedCommand, name)
	}
	spec.Name = name
	spec.Description = strings.TrimSpace(spec.Description)

	r.mu.Lock()
	if existing, ok := r.specs[name]; ok {
		r.mu.Unlock()
		log.Warn("console command duplicate", "kept", existing.Description, "ignored", spec.Description)
		return fmt.Errorf("%w: %s", schema.ErrDuplicateCommand, name)
	}
	r.specs[name] = spec
	r.order = append(r.order, name)
	count := len(r.order)
	r.mu.Unlock()
	log.Debug("console command registered", "commands", count)
	return nil
}

// Lookup finds a spec by name, ignoring case.
func (r *Registry) Lookup(name string) (Spec, bool) {
	if r == nil {
		return Spec{}, false
	}
	key := schema.CommandName(strings.ToLower(strings.TrimSpace(name)))
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[key]
	return spec, ok
}

// Keys yields registered names in registration order. Each iteration starts
// over from a snapshot taken when it begins.
func (r *Registry) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r == nil {
			return
		}
		r.mu.RLock()
		names := make([]schema.CommandName, len(r.order))
		copy(names, r.order)
		r.mu.RUnlock()
		for _, name := range names {
			if !yield(string(name)) {
				return
			}
		}
	}
}

// Specs returns registered specs in registration order.
func (r *Registry) Specs() []Spec {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.specs[name])
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Provider contributes commands to a registry.
type Provider interface {
	Commands() []Spec
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() []Spec

// Commands implements Provider.
func (f ProviderFunc) Commands() []Spec {
	if f == nil {
		return nil
	}
	return f()
}

// Discover registers every spec from providers, in provider order. Rejected
// specs are logged by the registry and skipped. It returns how many specs
// were registered.
func Discover(reg *Registry, providers ...Provider) int {
	if reg == nil {
		return 0
	}
	added := 0
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		for _, spec := range provider.Commands() {
			if err := reg.Register(spec); err != nil {
				continue
			}
			added++
		}
	}
	reg.log.Info("console commands discovered", "added", added, "commands", reg.Len())
	return added
}

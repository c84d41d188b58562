// Package dispatch turns UI, object and keyboard events into navigation
// requests through a finite binding table.
package dispatch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/roomnav/internal/nav"
)

var (
	ErrUnboundTarget    = errors.New("dispatch: binding targets an unregistered view")
	ErrDuplicateAction  = errors.New("dispatch: duplicate action")
	ErrDuplicateTrigger = errors.New("dispatch: duplicate trigger")
)

type triggerKey struct {
	source  SourceKind
	trigger string
}

// Dispatcher resolves actions against its table and forwards them to the store.
type Dispatcher struct {
	store     *nav.Store
	logger    *zap.Logger
	bindings  []Binding
	byAction  map[string]Binding
	byTrigger map[triggerKey]Binding
	ignored   int
}

// New validates bindings against the store's registry. A binding whose target
// is not registered is a programming error and fails construction.
func New(store *nav.Store, bindings []Binding, logger *zap.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		store:     store,
		logger:    logger,
		bindings:  make([]Binding, 0, len(bindings)),
		byAction:  make(map[string]Binding, len(bindings)),
		byTrigger: make(map[triggerKey]Binding, len(bindings)),
	}

	reg := store.Registry()
	for _, b := range bindings {
		if !reg.Has(b.Target) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnboundTarget, b.Action, b.Target)
		}
		if _, dup := d.byAction[b.Action]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAction, b.Action)
		}
		key := triggerKey{b.Source, b.Trigger}
		if _, dup := d.byTrigger[key]; dup {
			return nil, fmt.Errorf("%w: %s %q", ErrDuplicateTrigger, b.Source, b.Trigger)
		}
		d.byAction[b.Action] = b
		d.byTrigger[key] = b
		d.bindings = append(d.bindings, b)
	}
	return d, nil
}

// Registered keeps only the bindings whose target the registry knows, for
// layouts that register a subset of the room.
func Registered(reg *nav.Registry, bindings []Binding) []Binding {
	out := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if reg.Has(b.Target) {
			out = append(out, b)
		}
	}
	return out
}

// Dispatch fires the named action. Unknown actions and rejected targets are
// logged and ignored. It reports the binding's target and whether it fired.
func (d *Dispatcher) Dispatch(action string) (nav.TargetID, bool) {
	b, ok := d.byAction[action]
	if !ok {
		d.ignored++
		d.logger.Warn("ignoring unknown action", zap.String("action", action))
		return "", false
	}
	return d.fire(b)
}

// Trigger resolves an input event to its binding and fires it. Unbound
// events are logged at debug level and not counted in Ignored.
func (d *Dispatcher) Trigger(source SourceKind, trigger string) (nav.TargetID, bool) {
	b, ok := d.byTrigger[triggerKey{source, trigger}]
	if !ok {
		d.logger.Debug("unbound trigger",
			zap.Stringer("source", source),
			zap.String("trigger", trigger))
		return "", false
	}
	return d.fire(b)
}

func (d *Dispatcher) fire(b Binding) (nav.TargetID, bool) {
	if err := d.store.SetTarget(b.Target); err != nil {
		d.ignored++
		d.logger.Warn("dispatch rejected by store",
			zap.String("action", b.Action),
			zap.String("source", b.Source.String()),
			zap.Error(err))
		return b.Target, false
	}
	d.logger.Debug("dispatched",
		zap.String("action", b.Action),
		zap.String("source", b.Source.String()),
		zap.String("target", string(b.Target)))
	return b.Target, true
}

// Lookup returns the binding for action.
func (d *Dispatcher) Lookup(action string) (Binding, bool) {
	b, ok := d.byAction[action]
	return b, ok
}

// Bindings returns the table in declaration order.
func (d *Dispatcher) Bindings() []Binding {
	out := make([]Binding, len(d.bindings))
	copy(out, d.bindings)
	return out
}

// BySource returns the bindings raised by one kind of source.
func (d *Dispatcher) BySource(kind SourceKind) []Binding {
	var out []Binding
	for _, b := range d.bindings {
		if b.Source == kind {
			out = append(out, b)
		}
	}
	return out
}

// Ignored counts requests that were dropped.
func (d *Dispatcher) Ignored() int { return d.ignored }

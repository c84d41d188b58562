// Package hooks binds transient UI state to navigation transitions.
package hooks

import (
	"sync"

	"go.uber.org/zap"

	"github.com/san-kum/roomnav/internal/nav"
)

// Onboarding is a one-way latch: the overlay is visible until the first
// transition away from the default view, then stays hidden for the session.
type Onboarding struct {
	logger *zap.Logger

	mu        sync.Mutex
	visible   bool
	clearedBy nav.Change
}

func NewOnboarding(logger *zap.Logger) *Onboarding {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Onboarding{logger: logger, visible: true}
}

// OnTargetChange implements nav.Subscriber.
func (o *Onboarding) OnTargetChange(ch nav.Change) {
	if ch.To == nav.Default {
		return
	}

	o.mu.Lock()
	if !o.visible {
		o.mu.Unlock()
		return
	}
	o.visible = false
	o.clearedBy = ch
	o.mu.Unlock()

	o.logger.Info("onboarding dismissed",
		zap.String("target", string(ch.To)),
		zap.Int64("seq", ch.Seq))
}

func (o *Onboarding) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// ClearedBy returns the transition that closed the latch, if any.
func (o *Onboarding) ClearedBy() (nav.Change, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clearedBy, !o.visible
}

// Attach subscribes every hook to store and returns a function detaching them.
func Attach(store *nav.Store, hooks ...nav.Subscriber) (detach func()) {
	cancels := make([]func(), 0, len(hooks))
	for _, h := range hooks {
		cancels = append(cancels, store.Subscribe(h))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

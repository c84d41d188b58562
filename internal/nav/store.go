package nav

import (
	"sync"

	"go.uber.org/zap"
)

// Change describes one effective target transition.
type Change struct {
	From TargetID
	To   TargetID
	Seq  int64 // 1 for the first transition of the session
}

// Subscriber receives target transitions.
type Subscriber interface {
	OnTargetChange(ch Change)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ch Change)

func (f SubscriberFunc) OnTargetChange(ch Change) { f(ch) }

type subscription struct {
	id  int
	sub Subscriber
}

// Store owns the current navigation target. It is passed explicitly to
// whichever component runs the render loop.
type Store struct {
	registry *Registry
	logger   *zap.Logger

	mu      sync.RWMutex
	current TargetID
	seq     int64

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewStore(reg *Registry, opts ...StoreOption) *Store {
	s := &Store{
		registry: reg,
		logger:   zap.NewNop(),
		current:  Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTarget makes id the current target. Ids missing from the registry are
// rejected with an *InvalidTargetError and leave the state unchanged.
// Setting the target that is already current does nothing at all.
func (s *Store) SetTarget(id TargetID) error {
	if !s.registry.Has(id) {
		err := &InvalidTargetError{Target: id, Known: s.registry.Targets(), Current: s.Target()}
		s.logger.Warn("ignoring navigation to unregistered target",
			zap.String("target", string(id)),
			zap.String("current", string(err.Current)))
		return err
	}

	s.mu.Lock()
	if s.current == id {
		s.mu.Unlock()
		return nil
	}
	ch := Change{From: s.current, To: id}
	s.current = id
	s.seq++
	ch.Seq = s.seq
	s.mu.Unlock()

	s.logger.Debug("target changed",
		zap.String("from", string(ch.From)),
		zap.String("to", string(ch.To)),
		zap.Int64("seq", ch.Seq))

	s.publish(ch)
	return nil
}

// ResetToDefault is SetTarget(Default).
func (s *Store) ResetToDefault() error {
	return s.SetTarget(Default)
}

// Target returns a snapshot of the current target.
func (s *Store) Target() TargetID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsActive reports whether id is the current target.
func (s *Store) IsActive(id TargetID) bool {
	return s.Target() == id
}

// Pose returns the preset pose of the current target.
func (s *Store) Pose() CameraPose {
	return s.registry.MustLookup(s.Target())
}

// Changes returns the number of effective transitions so far.
func (s *Store) Changes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

func (s *Store) Registry() *Registry { return s.registry }

// Subscribe registers sub for future transitions and returns a function that
// removes it again.
func (s *Store) Subscribe(sub Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, sub: sub})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, entry := range s.subs {
				if entry.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) publish(ch Change) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, entry := range subs {
		entry.sub.OnTargetChange(ch)
	}
}

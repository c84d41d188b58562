// Package experiment assembles a navigation session from configuration.
package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/roomnav/internal/config"
	"github.com/san-kum/roomnav/internal/dispatch"
	"github.com/san-kum/roomnav/internal/hooks"
	"github.com/san-kum/roomnav/internal/metrics"
	"github.com/san-kum/roomnav/internal/nav"
	"github.com/san-kum/roomnav/internal/rig"
)

// Experiment owns one store and everything wired to it.
type Experiment struct {
	cfg        *config.Config
	logger     *zap.Logger
	store      *nav.Store
	dispatcher *dispatch.Dispatcher
	onboarding *hooks.Onboarding
	rig        *rig.Rig
	detach     func()
}

// New validates cfg and builds the session. metricNames selects metrics from
// reg; nil attaches metrics.Defaults.
func New(cfg *config.Config, reg *Registry, metricNames []string, logger *zap.Logger) (*Experiment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	targets, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	damping, err := cfg.DampingRule()
	if err != nil {
		return nil, err
	}
	bindings, err := cfg.BindingTable(targets)
	if err != nil {
		return nil, err
	}

	store := nav.NewStore(targets, nav.WithLogger(logger.Named("nav")))
	d, err := dispatch.New(store, bindings, logger.Named("dispatch"))
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		dispatcher: d,
		rig:        rig.New(store, damping),
		detach:     func() {},
	}
	if cfg.Onboarding {
		e.onboarding = hooks.NewOnboarding(logger.Named("hooks"))
		e.detach = hooks.Attach(store, e.onboarding)
	}

	if metricNames == nil {
		for _, m := range metrics.Defaults(cfg.SettleTolerance) {
			e.rig.AddMetric(m)
		}
	}
	for _, name := range metricNames {
		m, err := reg.GetMetric(name, cfg.SettleTolerance)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.rig.AddMetric(m)
	}

	logger.Debug("experiment ready",
		zap.Int("targets", targets.Len()),
		zap.Int("bindings", len(bindings)),
		zap.String("damping", cfg.Damping.Mode))
	return e, nil
}

// Run plays script headlessly for frames frames at the configured frame time.
func (e *Experiment) Run(ctx context.Context, script rig.Script, frames int) (*rig.Result, error) {
	runCfg := rig.RunConfig{Frames: frames, FrameTime: e.cfg.FrameTime()}
	result, err := e.rig.Run(ctx, e.dispatcher, script, runCfg)
	if err != nil {
		return result, err
	}
	for _, action := range result.Ignored {
		e.logger.Warn("script cue ignored", zap.String("action", action))
	}
	return result, nil
}

// Close detaches hooks from the store.
func (e *Experiment) Close() {
	e.detach()
}

func (e *Experiment) Config() *config.Config           { return e.cfg }
func (e *Experiment) Store() *nav.Store                { return e.store }
func (e *Experiment) Dispatcher() *dispatch.Dispatcher { return e.dispatcher }
func (e *Experiment) Rig() *rig.Rig                    { return e.rig }

// Onboarding is nil when the overlay is disabled.
func (e *Experiment) Onboarding() *hooks.Onboarding { return e.onboarding }

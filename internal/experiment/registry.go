package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/roomnav/internal/metrics"
	"github.com/san-kum/roomnav/internal/rig"
)

// Registry maps metric names to factories taking the settle tolerance.
type Registry struct {
	metrics map[string]func(tolerance float64) rig.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(float64) rig.Metric),
	}

	r.metrics["final_distance"] = func(float64) rig.Metric { return metrics.NewFinalDistance() }
	r.metrics["settle_frames"] = func(tol float64) rig.Metric { return metrics.NewSettle(tol) }
	r.metrics["path_length"] = func(float64) rig.Metric { return metrics.NewPathLength() }
	r.metrics["retargets"] = func(float64) rig.Metric { return metrics.NewRetargets() }

	return r
}

func (r *Registry) GetMetric(name string, tolerance float64) (rig.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
	}
	return fn(tolerance), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

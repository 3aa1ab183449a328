package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueActors struct {
	counter     prometheus.Gauge
	actorsCache map[string]struct{} // TODO: We may want to make this persistent in the DB.
	mu          sync.RWMutex
}

// Actors
const actorsCountPerWeek = "actors_count_per_week"

var totalUniqueActorsPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: reviewPlanner,
		Name:      actorsCountPerWeek,
		Help:      "metrics to record the number of unique acting users per week",
	},
)

var UniqueActorsPerWeek = &uniqueActors{
	counter:     totalUniqueActorsPerWeekMetric,
	actorsCache: make(map[string]struct{}),
}

func (v *uniqueActors) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.actorsCache = make(map[string]struct{})
	v.counter.Set(0)
}

func (v *uniqueActors) IncreaseTotalUniqueActors(actor string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.actorsCache[actor]; exists {
		return
	}

	v.actorsCache[actor] = struct{}{}
	v.counter.Inc()
}

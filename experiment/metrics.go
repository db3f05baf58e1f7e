// SPDX-License-Identifier: MIT

package experiment

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts walk work and observations per model.
type Metrics struct {
	steps        *prometheus.CounterVec
	observations *prometheus.CounterVec
	firstReady   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hourglass",
			Name:      "walk_steps_total",
			Help:      "Total random-walk steps taken by model.",
		}, []string{"model"}),
		observations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hourglass",
			Name:      "observations_total",
			Help:      "Total observations by model and whether a fresh sample was ready.",
		}, []string{"model", "ready"}),
		firstReady: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hourglass",
			Name:      "first_ready_point",
			Help:      "Curve point at which a trial first saw a fresh sample.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}, []string{"model"}),
	}
	for _, c := range []prometheus.Collector{m.steps, m.observations, m.firstReady} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("experiment: register metrics: %w", err)
		}
	}

	return m, nil
}

// recorder binds a model label. A nil *Metrics records nothing.
type recorder struct {
	m     *Metrics
	model string
}

func (m *Metrics) recorder(model string) recorder {
	return recorder{m: m, model: model}
}

func (r recorder) stepped(n uint64) {
	if r.m == nil || n == 0 {
		return
	}
	r.m.steps.WithLabelValues(r.model).Add(float64(n))
}

func (r recorder) observed(ready bool) {
	if r.m == nil {
		return
	}
	r.m.observations.WithLabelValues(r.model, strconv.FormatBool(ready)).Inc()
}

func (r recorder) firstReady(point int) {
	if r.m == nil {
		return
	}
	r.m.firstReady.WithLabelValues(r.model).Observe(float64(point))
}

package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"reviewdesk/internal/model"
)

// Metrics counts dispatched workflow actions by outcome.
type Metrics struct {
	actions *prometheus.CounterVec
}

// NewMetrics registers the action counter with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviewdesk_actions_total",
				Help: "Total number of workflow actions dispatched to the review service.",
			},
			[]string{"action", "outcome"},
		),
	}
	if err := reg.Register(m.actions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(action model.Action, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(string(action), outcome).Inc()
}

// Package metrics registers the ledger's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crowdfund"

// Ledger groups the collectors the funding ledger updates
type Ledger struct {
	Operations *prometheus.CounterVec
	Volume     *prometheus.CounterVec
}

// NewLedger creates the collectors and registers them on reg
func NewLedger(reg prometheus.Registerer) *Ledger {
	m := &Ledger{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by name and result.",
		}, []string{"op", "result"}),
		Volume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "volume_total",
			Help:      "Value moved by the ledger, in smallest units, by flow.",
		}, []string{"flow"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Volume)
	}
	return m
}

// Observe records one operation outcome. Result is a stable error code or "ok".
func (m *Ledger) Observe(op, result string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

// AddVolume records value moved. Amounts beyond float64 precision are approximate.
func (m *Ledger) AddVolume(flow string, amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.Volume.WithLabelValues(flow).Add(amount)
}

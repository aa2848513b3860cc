package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers userregistry_general_counters{result} on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userregistry",
			Name:      "general_counters",
			Help:      "Outcomes of requests, auth attempts, user writes and notifications.",
		},
		[]string{"result"})
}

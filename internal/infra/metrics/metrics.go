package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expiring_links_created_total",
			Help: "Total number of link creation attempts",
		},
		[]string{"status"},
	)

	ResolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expiring_links_resolves_total",
			Help: "Total number of resolve attempts by outcome",
		},
		[]string{"outcome"},
	)

	ForceExpireFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "expiring_links_force_expire_failures_total",
			Help: "Total number of failed expire-on-access overwrites",
		},
	)
)

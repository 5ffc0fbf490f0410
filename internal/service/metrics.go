package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsActive tracks the number of live page sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Number of live page sessions",
		},
	)

	// SessionsExpired counts sessions torn down by the idle sweep.
	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_sessions_expired_total",
			Help: "Total number of page sessions expired for inactivity",
		},
	)

	// CartIntents counts cart add/remove requests by action and outcome.
	CartIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_intents_total",
			Help: "Total number of cart intents handled",
		},
		[]string{"action", "outcome"},
	)

	// ReviewsSubmitted counts review form submissions by outcome.
	ReviewsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_reviews_submitted_total",
			Help: "Total number of review form submissions",
		},
		[]string{"outcome"},
	)

	// VariantSelections counts variant selections.
	VariantSelections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_variant_selections_total",
			Help: "Total number of variant selections",
		},
	)
)

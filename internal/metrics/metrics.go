package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pahnawa",
		Name:      "orders_placed_total",
		Help:      "Orders committed, by payment method.",
	}, []string{"method"})

	SignatureFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pahnawa",
		Name:      "payment_signature_failures_total",
		Help:      "Payment callbacks rejected by the HMAC check.",
	})

	StockConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pahnawa",
		Name:      "stock_conflicts_total",
		Help:      "Optimistic stock decrements that needed a retry.",
	})

	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pahnawa",
		Name:      "checkout_duration_seconds",
		Help:      "End-to-end order-write latency.",
		Buckets:   prometheus.DefBuckets,
	})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pahnawa",
		Name:      "confirmation_emails_total",
		Help:      "Order confirmation emails, by outcome.",
	}, []string{"outcome"})
)

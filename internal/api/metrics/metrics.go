// Package metrics defines and registers the custom Prometheus metrics for
// the service-orders API. It is the single source of truth for metric
// names, labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "service_orders"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRevocationsTotal counts explicit logout revocations.
var TokenRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_revocations_total",
		Help:      "Total number of tokens revoked via logout.",
	},
)

// OrdersCreatedTotal counts newly opened service orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of service orders created.",
	},
)

// OrderStatusChangesTotal counts order status transitions.
// Label:
//   - status: the status the order moved to
var OrderStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order status transitions, by target status.",
	},
	[]string{"status"},
)

// PhotosUploadedTotal counts accepted photo uploads.
var PhotosUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_uploaded_total",
		Help:      "Total number of photos uploaded to service orders.",
	},
)

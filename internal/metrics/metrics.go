// Package metrics collects storefront counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the fulfillment flow reports to.
type Recorder interface {
	RecordWebhookEvent(eventType string)
	RecordPurchaseFulfilled()
	RecordDuplicateDelivery()
	RecordNotificationFailure()
}

type Collector struct {
	webhookEvents        *prometheus.CounterVec
	purchasesFulfilled   prometheus.Counter
	duplicateDeliveries  prometheus.Counter
	notificationFailures prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_webhook_events_total",
			Help: "Verified payment webhook events by event type.",
		}, []string{"type"}),
		purchasesFulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_purchases_fulfilled_total",
			Help: "Purchases that produced an order and a download verification.",
		}),
		duplicateDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_webhook_duplicate_deliveries_total",
			Help: "Webhook deliveries for events that were already fulfilled.",
		}),
		notificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_notification_failures_total",
			Help: "Receipt emails that failed to send.",
		}),
	}

	reg.MustRegister(
		c.webhookEvents,
		c.purchasesFulfilled,
		c.duplicateDeliveries,
		c.notificationFailures,
	)

	return c
}

func (c *Collector) RecordWebhookEvent(eventType string) {
	c.webhookEvents.WithLabelValues(eventType).Inc()
}

func (c *Collector) RecordPurchaseFulfilled() {
	c.purchasesFulfilled.Inc()
}

func (c *Collector) RecordDuplicateDelivery() {
	c.duplicateDeliveries.Inc()
}

func (c *Collector) RecordNotificationFailure() {
	c.notificationFailures.Inc()
}

// Handler serves the gathered metrics in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordWebhookEvent(string)  {}
func (Nop) RecordPurchaseFulfilled()   {}
func (Nop) RecordDuplicateDelivery()   {}
func (Nop) RecordNotificationFailure() {}

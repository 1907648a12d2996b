package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordWebhookEvent("charge.succeeded")
	c.RecordWebhookEvent("charge.succeeded")
	c.RecordWebhookEvent("payment_intent.created")
	c.RecordPurchaseFulfilled()
	c.RecordDuplicateDelivery()
	c.RecordNotificationFailure()
	c.RecordNotificationFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.webhookEvents.WithLabelValues("charge.succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.webhookEvents.WithLabelValues("payment_intent.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.purchasesFulfilled))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.duplicateDeliveries))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.notificationFailures))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordPurchaseFulfilled()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "storefront_purchases_fulfilled_total 1")
}

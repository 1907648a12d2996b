package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendMailer_SendPurchaseReceipt(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	rc := resend.NewClient("re_test")
	rc.BaseURL, _ = url.Parse(srv.URL + "/")
	m := newResendMailer(rc, "shop@example.com")

	err := m.SendPurchaseReceipt(context.Background(), &PurchaseReceipt{
		To:               "buyer@example.com",
		ProductName:      "Go Book",
		PricePaidInCents: 1999,
		DownloadURL:      "https://shop.example.com/api/products/download/v-1",
		ExpiresAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "Support <shop@example.com>", got["from"])
	assert.Equal(t, []any{"buyer@example.com"}, got["to"])
	assert.Equal(t, "Your purchase of Go Book", got["subject"])
	assert.Contains(t, got["html"], "$19.99")
	assert.Contains(t, got["html"], "https://shop.example.com/api/products/download/v-1")
}

func TestResendMailer_PropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	}))
	defer srv.Close()

	rc := resend.NewClient("re_test")
	rc.BaseURL, _ = url.Parse(srv.URL + "/")
	m := newResendMailer(rc, "")

	err := m.SendPurchaseReceipt(context.Background(), &PurchaseReceipt{To: "buyer@example.com", ProductName: "Go Book"})
	assert.Error(t, err)
}

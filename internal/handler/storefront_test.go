package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-demo/internal/model"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorefrontEcho(storefront *mockStorefrontService, checkout *mockCheckoutService) *echo.Echo {
	h := NewStorefrontHandler(storefront, checkout)
	e := echo.New()
	e.GET("/api/products", h.ListProducts)
	e.GET("/api/products/:id/purchase", h.PurchasePage)
	e.POST("/api/orders/check", h.CheckOrder)
	e.GET("/api/stripe/purchase-success", h.PurchaseSuccess)
	e.GET("/api/products/download/:verificationId", h.DownloadPurchase)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListProducts_HidesFilePath(t *testing.T) {
	e := newStorefrontEcho(&mockStorefrontService{
		ListProductsFunc: func(ctx context.Context) ([]*model.Product, error) {
			return []*model.Product{{
				ID:                     "p1",
				Name:                   "Course",
				PriceInCents:           1050,
				FilePath:               "products/secret-course.pdf",
				ImagePath:              "/products/cover.png",
				IsAvailableForPurchase: true,
			}}, nil
		},
	}, &mockCheckoutService{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "secret-course.pdf")

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Course", body[0]["name"])
	assert.Equal(t, float64(1050), body[0]["priceInCents"])
	assert.Equal(t, "$10.5", body[0]["price"])
	assert.Equal(t, "/products/cover.png", body[0]["imagePath"])
}

func TestPurchasePage(t *testing.T) {
	e := newStorefrontEcho(&mockStorefrontService{}, &mockCheckoutService{
		PreparePurchaseFunc: func(ctx context.Context, productID string) (*service.PurchasePage, error) {
			if productID != "p1" {
				return nil, service.ErrNotFound
			}
			return &service.PurchasePage{
				Product:      &model.Product{ID: "p1", Name: "Course"},
				ClientSecret: "pi_secret",
				PublicKey:    "pk_test",
			}, nil
		},
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/products/p1/purchase", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pi_secret", body["clientSecret"])
	assert.Equal(t, "pk_test", body["publicKey"])

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/products/other/purchase", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckOrder(t *testing.T) {
	e := newStorefrontEcho(&mockStorefrontService{}, &mockCheckoutService{
		CheckCanPurchaseFunc: func(ctx context.Context, email, productID string) error {
			if email == "buyer@example.com" && productID == "p1" {
				return service.ErrAlreadyPurchased
			}
			return nil
		},
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/check", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return serve(e, req)
	}

	rec := post(`{"email":"buyer@example.com","productId":"p1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "You already purchased this product.")

	rec = post(`{"email":"new@example.com","productId":"p1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(`{"productId":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseSuccess(t *testing.T) {
	e := newStorefrontEcho(&mockStorefrontService{}, &mockCheckoutService{
		PurchaseSuccessFunc: func(ctx context.Context, paymentIntentID string) (*service.PurchaseSuccess, error) {
			return &service.PurchaseSuccess{
				Product:   &model.Product{ID: "p1", Name: "Course"},
				Succeeded: paymentIntentID == "pi_ok",
			}, nil
		},
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/stripe/purchase-success?payment_intent=pi_ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["succeeded"])

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/stripe/purchase-success", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadPurchase(t *testing.T) {
	e := newStorefrontEcho(&mockStorefrontService{
		DownloadPurchaseFunc: func(ctx context.Context, verificationID string) (*service.Download, error) {
			switch verificationID {
			case "valid":
				return &service.Download{
					Filename: "Course.pdf",
					Size:     9,
					Content:  io.NopCloser(strings.NewReader("pdf-bytes")),
				}, nil
			case "expired":
				return nil, service.ErrVerificationExpired
			}
			return nil, service.ErrNotFound
		},
	}, &mockCheckoutService{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/products/download/valid", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Course.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "9", rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, "pdf-bytes", rec.Body.String())

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/products/download/expired", nil))
	assert.Equal(t, http.StatusGone, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/products/download/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

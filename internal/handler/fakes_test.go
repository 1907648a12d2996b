package handler

import (
	"context"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
	"storefront-demo/internal/service"
)

type mockFulfillmentService struct {
	HandleWebhookFunc func(ctx context.Context, payload []byte, signature string) (*service.FulfillmentResult, error)
}

func (m *mockFulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*service.FulfillmentResult, error) {
	return m.HandleWebhookFunc(ctx, payload, signature)
}

type mockStorefrontService struct {
	ListProductsFunc     func(ctx context.Context) ([]*model.Product, error)
	DownloadPurchaseFunc func(ctx context.Context, verificationID string) (*service.Download, error)
}

func (m *mockStorefrontService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return m.ListProductsFunc(ctx)
}

func (m *mockStorefrontService) DownloadPurchase(ctx context.Context, verificationID string) (*service.Download, error) {
	return m.DownloadPurchaseFunc(ctx, verificationID)
}

type mockCheckoutService struct {
	service.CheckoutService
	PreparePurchaseFunc  func(ctx context.Context, productID string) (*service.PurchasePage, error)
	CheckCanPurchaseFunc func(ctx context.Context, email, productID string) error
	PurchaseSuccessFunc  func(ctx context.Context, paymentIntentID string) (*service.PurchaseSuccess, error)
}

func (m *mockCheckoutService) PreparePurchase(ctx context.Context, productID string) (*service.PurchasePage, error) {
	return m.PreparePurchaseFunc(ctx, productID)
}

func (m *mockCheckoutService) CheckCanPurchase(ctx context.Context, email, productID string) error {
	return m.CheckCanPurchaseFunc(ctx, email, productID)
}

func (m *mockCheckoutService) PurchaseSuccess(ctx context.Context, paymentIntentID string) (*service.PurchaseSuccess, error) {
	return m.PurchaseSuccessFunc(ctx, paymentIntentID)
}

type mockProductService struct {
	CreateProductFunc       func(ctx context.Context, form *service.ProductForm) (*service.ActionResult, error)
	UpdateProductFunc       func(ctx context.Context, productID string, form *service.ProductForm) (*service.ActionResult, error)
	ToggleAvailabilityFunc  func(ctx context.Context, productID string, available bool) error
	DeleteProductFunc       func(ctx context.Context, productID string) error
	ListProductsFunc        func(ctx context.Context) ([]*repository.ProductSummary, error)
	DownloadProductFileFunc func(ctx context.Context, productID string) (*service.Download, error)
}

func (m *mockProductService) CreateProduct(ctx context.Context, form *service.ProductForm) (*service.ActionResult, error) {
	return m.CreateProductFunc(ctx, form)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, productID string, form *service.ProductForm) (*service.ActionResult, error) {
	return m.UpdateProductFunc(ctx, productID, form)
}

func (m *mockProductService) ToggleAvailability(ctx context.Context, productID string, available bool) error {
	return m.ToggleAvailabilityFunc(ctx, productID, available)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, productID string) error {
	return m.DeleteProductFunc(ctx, productID)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]*repository.ProductSummary, error) {
	return m.ListProductsFunc(ctx)
}

func (m *mockProductService) DownloadProductFile(ctx context.Context, productID string) (*service.Download, error) {
	return m.DownloadProductFileFunc(ctx, productID)
}

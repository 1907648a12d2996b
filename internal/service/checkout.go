package service

import (
	"context"
	"fmt"
	"storefront-demo/internal/client"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
)

type PurchasePage struct {
	Product      *model.Product
	ClientSecret string
	PublicKey    string
}

type PurchaseSuccess struct {
	Product   *model.Product
	Succeeded bool
}

type CheckoutService interface {
	// PreparePurchase opens a payment intent for a product on sale.
	PreparePurchase(ctx context.Context, productID string) (*PurchasePage, error)
	OrderExists(ctx context.Context, email, productID string) (bool, error)
	// CheckCanPurchase runs before payment confirmation and fails with
	// ErrAlreadyPurchased when email already owns the product.
	CheckCanPurchase(ctx context.Context, email, productID string) error
	PurchaseSuccess(ctx context.Context, paymentIntentID string) (*PurchaseSuccess, error)
}

type checkoutServiceImpl struct {
	stripeClient    client.StripeClient
	stripePublicKey string
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	stripePublicKey string,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient:    stripeClient,
		stripePublicKey: stripePublicKey,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
	}
}

func (s *checkoutServiceImpl) PreparePurchase(ctx context.Context, productID string) (*PurchasePage, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !product.IsAvailableForPurchase {
		return nil, ErrNotFound
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, product.PriceInCents, product.ID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment intent %s has no client secret", intent.ID)
	}

	return &PurchasePage{
		Product:      product,
		ClientSecret: intent.ClientSecret,
		PublicKey:    s.stripePublicKey,
	}, nil
}

func (s *checkoutServiceImpl) OrderExists(ctx context.Context, email, productID string) (bool, error) {
	return s.orderRepo.ExistsForEmail(ctx, email, productID)
}

func (s *checkoutServiceImpl) CheckCanPurchase(ctx context.Context, email, productID string) error {
	exists, err := s.OrderExists(ctx, email, productID)
	if err != nil {
		return fmt.Errorf("check existing order: %w", err)
	}
	if exists {
		return ErrAlreadyPurchased
	}
	return nil
}

func (s *checkoutServiceImpl) PurchaseSuccess(ctx context.Context, paymentIntentID string) (*PurchaseSuccess, error) {
	intent, err := s.stripeClient.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("get payment intent: %w", err)
	}
	if intent.ProductID == "" {
		return nil, ErrNotFound
	}

	product, err := s.productRepo.FindByID(ctx, intent.ProductID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return &PurchaseSuccess{
		Product:   product,
		Succeeded: intent.Succeeded(),
	}, nil
}

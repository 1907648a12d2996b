package service

import (
	"context"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
	"storefront-demo/internal/storage"
	"time"
)

type StorefrontService interface {
	// ListProducts returns the products on sale, ordered by name.
	ListProducts(ctx context.Context) ([]*model.Product, error)
	// DownloadPurchase opens the file a download verification grants.
	DownloadPurchase(ctx context.Context, verificationID string) (*Download, error)
}

type storefrontServiceImpl struct {
	productRepo      repository.ProductRepository
	verificationRepo repository.DownloadVerificationRepository
	files            storage.Store
	now              func() time.Time
}

func NewStorefrontService(
	productRepo repository.ProductRepository,
	verificationRepo repository.DownloadVerificationRepository,
	files storage.Store,
) StorefrontService {
	return &storefrontServiceImpl{
		productRepo:      productRepo,
		verificationRepo: verificationRepo,
		files:            files,
		now:              time.Now,
	}
}

func (s *storefrontServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListAvailable(ctx)
}

func (s *storefrontServiceImpl) DownloadPurchase(ctx context.Context, verificationID string) (*Download, error) {
	verification, err := s.verificationRepo.FindByID(ctx, verificationID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if !s.now().Before(verification.ExpiresAt) {
		return nil, ErrVerificationExpired
	}

	product, err := s.productRepo.FindByID(ctx, verification.ProductID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return openDownload(ctx, s.files, product)
}

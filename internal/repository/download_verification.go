package repository

import (
	"context"
	"storefront-demo/internal/model"

	"gorm.io/gorm"
)

type DownloadVerificationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, verification *model.DownloadVerification) error
	FindByID(ctx context.Context, verificationID string) (*model.DownloadVerification, error)
}

type downloadVerificationRepoImpl struct {
	db *gorm.DB
}

func NewDownloadVerificationRepository(db *gorm.DB) DownloadVerificationRepository {
	return &downloadVerificationRepoImpl{
		db: db,
	}
}

func (r *downloadVerificationRepoImpl) Create(ctx context.Context, tx *gorm.DB, verification *model.DownloadVerification) error {
	return tx.WithContext(ctx).Create(verification).Error
}

func (r *downloadVerificationRepoImpl) FindByID(ctx context.Context, verificationID string) (*model.DownloadVerification, error) {
	var verification model.DownloadVerification
	err := r.db.WithContext(ctx).
		Where("id = ?", verificationID).
		First(&verification).Error

	if err != nil {
		return nil, err
	}

	return &verification, nil
}

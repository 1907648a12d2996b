package repository

import (
	"context"
	"storefront-demo/internal/model"
	"time"

	"gorm.io/gorm"
)

type WebhookEventRepository interface {
	Find(ctx context.Context, eventID string) (*model.WebhookEvent, error)
	Create(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) error
	MarkNotified(ctx context.Context, eventID string, at time.Time) error
}

type webhookEventRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepositoryImpl{db: db}
}

func (r *webhookEventRepositoryImpl) Find(ctx context.Context, eventID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&event).Error

	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *webhookEventRepositoryImpl) Create(ctx context.Context, tx *gorm.DB, event *model.WebhookEvent) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *webhookEventRepositoryImpl) MarkNotified(ctx context.Context, eventID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("event_id = ?", eventID).
		Update("notified_at", at)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

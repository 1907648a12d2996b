package repository

import (
	"context"
	"storefront-demo/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ExistsForEmail(ctx context.Context, email, productID string) (bool, error)
	List(ctx context.Context) ([]*model.Order, error)
	SalesTotals(ctx context.Context) (*SalesTotals, error)
}

type SalesTotals struct {
	OrderCount   int64
	TotalInCents int64
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ExistsForEmail(ctx context.Context, email, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Joins("JOIN users ON users.id = orders.user_id").
		Where("users.email = ?", email).
		Where("orders.product_id = ?", productID).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) List(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		Order("created_at desc").
		Find(&orders).
		Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) SalesTotals(ctx context.Context) (*SalesTotals, error) {
	var totals SalesTotals
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(price_paid_in_cents), 0) AS total_in_cents").
		Scan(&totals).
		Error

	if err != nil {
		return nil, err
	}

	return &totals, nil
}

package repository

import (
	"context"
	"storefront-demo/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	SetAvailability(ctx context.Context, productID string, available bool) error
	Delete(ctx context.Context, productID string) error
	ListAvailable(ctx context.Context) ([]*model.Product, error)
	ListSummaries(ctx context.Context) ([]*ProductSummary, error)
	CountByAvailability(ctx context.Context) (active int64, inactive int64, err error)
}

// ProductSummary is a product row for the admin table.
type ProductSummary struct {
	ID                     string
	Name                   string
	PriceInCents           int64
	IsAvailableForPurchase bool
	OrderCount             int64
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":                      product.Name,
			"description":               product.Description,
			"price_in_cents":            product.PriceInCents,
			"file_path":                 product.FilePath,
			"image_path":                product.ImagePath,
			"is_available_for_purchase": product.IsAvailableForPurchase,
			"updated_at":                time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) SetAvailability(ctx context.Context, productID string, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"is_available_for_purchase": available,
			"updated_at":                time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) ListAvailable(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("is_available_for_purchase = ?", true).
		Order("name asc").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListSummaries(ctx context.Context) ([]*ProductSummary, error) {
	var summaries []*ProductSummary
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select(`products.id, products.name, products.price_in_cents,
			products.is_available_for_purchase, COUNT(orders.id) AS order_count`).
		Joins("LEFT JOIN orders ON orders.product_id = products.id").
		Group("products.id, products.name, products.price_in_cents, products.is_available_for_purchase").
		Order("products.name asc").
		Scan(&summaries).
		Error

	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *productRepoImpl) CountByAvailability(ctx context.Context) (int64, int64, error) {
	var active, inactive int64

	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_available_for_purchase = ?", true).
		Count(&active).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_available_for_purchase = ?", false).
		Count(&inactive).Error
	if err != nil {
		return 0, 0, err
	}

	return active, inactive, nil
}

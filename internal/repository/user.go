package repository

import (
	"context"
	"storefront-demo/internal/model"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// Upsert creates the user for email or touches the existing one, and
	// returns the stored row.
	Upsert(ctx context.Context, tx *gorm.DB, email string) (*model.User, error)
	// Delete removes the user and their orders and returns the removed user.
	Delete(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context) ([]*UserSummary, error)
	Count(ctx context.Context) (int64, error)
}

type UserSummary struct {
	ID               string
	Email            string
	OrderCount       int64
	TotalPaidInCents int64
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"updated_at": now,
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	// on conflict the generated id was not stored, read back the real row
	var stored model.User
	if err := tx.WithContext(ctx).Where("email = ?", email).First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *userRepoImpl) Delete(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.Order{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", userID).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) List(ctx context.Context) ([]*UserSummary, error) {
	var users []*UserSummary
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select(`users.id, users.email, COUNT(orders.id) AS order_count,
			COALESCE(SUM(orders.price_paid_in_cents), 0) AS total_paid_in_cents`).
		Joins("LEFT JOIN orders ON orders.user_id = users.id").
		Group("users.id, users.email, users.created_at").
		Order("users.created_at desc").
		Scan(&users).
		Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}

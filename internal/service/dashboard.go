package service

import (
	"context"
	"fmt"
	"storefront-demo/internal/format"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"

	"github.com/shopspring/decimal"
)

type SalesStats struct {
	OrderCount   int64
	TotalInCents int64
	Total        string
}

type CustomerStats struct {
	UserCount    int64
	AverageValue string // average paid per user, formatted
}

type ProductStats struct {
	ActiveCount   int64
	InactiveCount int64
}

type DashboardStats struct {
	Sales     SalesStats
	Customers CustomerStats
	Products  ProductStats
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
}

type dashboardServiceImpl struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
) DashboardService {
	return &dashboardServiceImpl{
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}
}

func (s *dashboardServiceImpl) GetStats(ctx context.Context) (*DashboardStats, error) {
	totals, err := s.orderRepo.SalesTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	active, inactive, err := s.productRepo.CountByAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	average := decimal.Zero
	if userCount > 0 {
		average = decimal.New(totals.TotalInCents, -2).Div(decimal.NewFromInt(userCount))
	}

	return &DashboardStats{
		Sales: SalesStats{
			OrderCount:   totals.OrderCount,
			TotalInCents: totals.TotalInCents,
			Total:        format.Currency(totals.TotalInCents),
		},
		Customers: CustomerStats{
			UserCount:    userCount,
			AverageValue: format.Dollars(average),
		},
		Products: ProductStats{
			ActiveCount:   active,
			InactiveCount: inactive,
		},
	}, nil
}

func (s *dashboardServiceImpl) ListOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.List(ctx)
}

package dto

import (
	"storefront-demo/internal/format"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
	"storefront-demo/internal/service"
	"time"
)

type Product struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	PriceInCents           int64     `json:"priceInCents"`
	Price                  string    `json:"price"`
	ImagePath              string    `json:"imagePath"`
	IsAvailableForPurchase bool      `json:"isAvailableForPurchase"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// NewProduct hides FilePath: purchasable files are only reachable through
// the download routes.
func NewProduct(p *model.Product) *Product {
	return &Product{
		ID:                     p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		PriceInCents:           p.PriceInCents,
		Price:                  format.Currency(p.PriceInCents),
		ImagePath:              p.ImagePath,
		IsAvailableForPurchase: p.IsAvailableForPurchase,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func NewProducts(products []*model.Product) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		out = append(out, NewProduct(p))
	}
	return out
}

type PurchasePageResponse struct {
	Product      *Product `json:"product"`
	ClientSecret string   `json:"clientSecret"`
	PublicKey    string   `json:"publicKey"`
}

type CheckOrderRequest struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

type PurchaseSuccessResponse struct {
	Product   *Product `json:"product"`
	Succeeded bool     `json:"succeeded"`
}

type AdminProduct struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	PriceInCents           int64  `json:"priceInCents"`
	Price                  string `json:"price"`
	IsAvailableForPurchase bool   `json:"isAvailableForPurchase"`
	OrderCount             int64  `json:"orderCount"`
	Orders                 string `json:"orders"`
}

func NewAdminProducts(summaries []*repository.ProductSummary) []*AdminProduct {
	out := make([]*AdminProduct, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, &AdminProduct{
			ID:                     s.ID,
			Name:                   s.Name,
			PriceInCents:           s.PriceInCents,
			Price:                  format.Currency(s.PriceInCents),
			IsAvailableForPurchase: s.IsAvailableForPurchase,
			OrderCount:             s.OrderCount,
			Orders:                 format.Number(s.OrderCount),
		})
	}
	return out
}

type SetAvailabilityRequest struct {
	IsAvailableForPurchase *bool `json:"isAvailableForPurchase"`
}

type ValidationErrorResponse struct {
	Errors service.FieldErrors `json:"errors"`
}

type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	OrderCount       int64  `json:"orderCount"`
	TotalPaidInCents int64  `json:"totalPaidInCents"`
	TotalPaid        string `json:"totalPaid"`
}

func NewUsers(summaries []*repository.UserSummary) []*User {
	out := make([]*User, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, &User{
			ID:               s.ID,
			Email:            s.Email,
			OrderCount:       s.OrderCount,
			TotalPaidInCents: s.TotalPaidInCents,
			TotalPaid:        format.Currency(s.TotalPaidInCents),
		})
	}
	return out
}

type Order struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	UserID           string    `json:"userId"`
	UserEmail        string    `json:"userEmail"`
	PricePaidInCents int64     `json:"pricePaidInCents"`
	PricePaid        string    `json:"pricePaid"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewOrders(orders []*model.Order) []*Order {
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		order := &Order{
			ID:               o.ID,
			ProductID:        o.ProductID,
			UserID:           o.UserID,
			PricePaidInCents: o.PricePaidInCents,
			PricePaid:        format.Currency(o.PricePaidInCents),
			CreatedAt:        o.CreatedAt,
		}
		// products and users can be deleted independently of their orders
		if o.Product != nil {
			order.ProductName = o.Product.Name
		}
		if o.User != nil {
			order.UserEmail = o.User.Email
		}
		out = append(out, order)
	}
	return out
}

type DashboardResponse struct {
	Sales struct {
		Amount        string `json:"amount"`
		AmountInCents int64  `json:"amountInCents"`
		NumberOfSales string `json:"numberOfSales"`
	} `json:"sales"`
	Customers struct {
		Count               string `json:"count"`
		AverageValuePerUser string `json:"averageValuePerUser"`
	} `json:"customers"`
	Products struct {
		Active   string `json:"active"`
		Inactive string `json:"inactive"`
	} `json:"products"`
}

func NewDashboardResponse(stats *service.DashboardStats) *DashboardResponse {
	var resp DashboardResponse
	resp.Sales.Amount = stats.Sales.Total
	resp.Sales.AmountInCents = stats.Sales.TotalInCents
	resp.Sales.NumberOfSales = format.Number(stats.Sales.OrderCount)
	resp.Customers.Count = format.Number(stats.Customers.UserCount)
	resp.Customers.AverageValuePerUser = stats.Customers.AverageValue
	resp.Products.Active = format.Number(stats.Products.ActiveCount)
	resp.Products.Inactive = format.Number(stats.Products.InactiveCount)
	return &resp
}

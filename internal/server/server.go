package server

import (
	"context"
	"log/slog"
	"net/http"
	"storefront-demo/internal/config"
	"storefront-demo/internal/handler"
	"storefront-demo/internal/metrics"
	appmiddleware "storefront-demo/internal/middleware"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Services struct {
	Storefront  service.StorefrontService
	Checkout    service.CheckoutService
	Fulfillment service.FulfillmentService
	Product     service.ProductService
	User        service.UserService
	Dashboard   service.DashboardService
}

type Options struct {
	Admin     config.Admin
	RateLimit config.RateLimit
	PublicDir string
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

type Server struct {
	echo              *echo.Echo
	opts              Options
	storefrontHandler *handler.StorefrontHandler
	webhookHandler    *handler.WebhookHandler
	productHandler    *handler.ProductHandler
	userHandler       *handler.UserHandler
	dashboardHandler  *handler.DashboardHandler
}

func NewServer(services Services, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(opts.Logger)))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if opts.PublicDir != "" {
		e.Static("/", opts.PublicDir)
	}

	s := &Server{
		echo:              e,
		opts:              opts,
		storefrontHandler: handler.NewStorefrontHandler(services.Storefront, services.Checkout),
		webhookHandler:    handler.NewWebhookHandler(services.Fulfillment),
		productHandler:    handler.NewProductHandler(services.Product),
		userHandler:       handler.NewUserHandler(services.User),
		dashboardHandler:  handler.NewDashboardHandler(services.Dashboard),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.opts.Gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.opts.Gatherer)))
	}

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	limited := appmiddleware.RateLimit(s.opts.RateLimit.RPS)
	api.GET("/products", s.storefrontHandler.ListProducts)
	api.GET("/products/:id/purchase", s.storefrontHandler.PurchasePage, limited)
	api.POST("/orders/check", s.storefrontHandler.CheckOrder, limited)
	api.GET("/stripe/purchase-success", s.storefrontHandler.PurchaseSuccess)
	api.GET("/products/download/:verificationId", s.storefrontHandler.DownloadPurchase)

	// -------- stripe webhooks --------
	api.POST("/webhooks/stripe", s.webhookHandler.StripeWebhook)

	// -------- admin --------
	admin := api.Group("/admin", appmiddleware.AdminAuth(s.opts.Admin))
	admin.GET("/dashboard", s.dashboardHandler.GetStats)
	admin.GET("/orders", s.dashboardHandler.ListOrders)

	admin.GET("/products", s.productHandler.ListProducts)
	admin.POST("/products", s.productHandler.CreateProduct)
	admin.PUT("/products/:id", s.productHandler.UpdateProduct)
	admin.PATCH("/products/:id/availability", s.productHandler.SetAvailability)
	admin.DELETE("/products/:id", s.productHandler.DeleteProduct)
	admin.GET("/products/:id/download", s.productHandler.DownloadProduct)

	admin.GET("/users", s.userHandler.ListUsers)
	admin.DELETE("/users/:id", s.userHandler.DeleteUser)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	if logger == nil {
		logger = slog.Default()
	}

	return middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	}
}

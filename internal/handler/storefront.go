package handler

import (
	"fmt"
	"net/http"
	"storefront-demo/internal/dto"
	"storefront-demo/internal/service"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type StorefrontHandler struct {
	storefrontService service.StorefrontService
	checkoutService   service.CheckoutService
}

func NewStorefrontHandler(storefrontService service.StorefrontService, checkoutService service.CheckoutService) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontService: storefrontService,
		checkoutService:   checkoutService,
	}
}

func (h *StorefrontHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.storefrontService.ListProducts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProducts(products))
}

func (h *StorefrontHandler) PurchasePage(c echo.Context) error {
	ctx := c.Request().Context()

	page, err := h.checkoutService.PreparePurchase(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.PurchasePageResponse{
		Product:      dto.NewProduct(page.Product),
		ClientSecret: page.ClientSecret,
		PublicKey:    page.PublicKey,
	})
}

func (h *StorefrontHandler) CheckOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and productId are required")
	}

	if err := h.checkoutService.CheckCanPurchase(ctx, req.Email, req.ProductID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"orderExists": false,
	})
}

func (h *StorefrontHandler) PurchaseSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	paymentIntentID := c.QueryParam("payment_intent")
	if paymentIntentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment_intent")
	}

	result, err := h.checkoutService.PurchaseSuccess(ctx, paymentIntentID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, &dto.PurchaseSuccessResponse{
		Product:   dto.NewProduct(result.Product),
		Succeeded: result.Succeeded,
	})
}

func (h *StorefrontHandler) DownloadPurchase(c echo.Context) error {
	ctx := c.Request().Context()

	download, err := h.storefrontService.DownloadPurchase(ctx, c.Param("verificationId"))
	if err != nil {
		return httpError(err)
	}

	return streamDownload(c, download)
}

func streamDownload(c echo.Context, download *service.Download) error {
	defer download.Content.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", download.Filename))
	header.Set(echo.HeaderContentLength, strconv.FormatInt(download.Size, 10))

	return c.Stream(http.StatusOK, echo.MIMEOctetStream, download.Content)
}

package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"storefront-demo/internal/dto"
	"storefront-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListProducts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewAdminProducts(products))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	form, closeFiles, err := bindProductForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	result, err := h.productService.CreateProduct(ctx, form)
	if err != nil {
		return err
	}

	return actionResponse(c, result)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	form, closeFiles, err := bindProductForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	result, err := h.productService.UpdateProduct(ctx, c.Param("id"), form)
	if err != nil {
		return err
	}

	return actionResponse(c, result)
}

func (h *ProductHandler) SetAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SetAvailabilityRequest
	if err := c.Bind(&req); err != nil || req.IsAvailableForPurchase == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isAvailableForPurchase is required")
	}

	if err := h.productService.ToggleAvailability(ctx, c.Param("id"), *req.IsAvailableForPurchase); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.DeleteProduct(ctx, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DownloadProduct(c echo.Context) error {
	ctx := c.Request().Context()

	download, err := h.productService.DownloadProductFile(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return streamDownload(c, download)
}

func actionResponse(c echo.Context, result *service.ActionResult) error {
	switch result.Status {
	case service.ActionInvalid:
		return c.JSON(http.StatusUnprocessableEntity, &dto.ValidationErrorResponse{
			Errors: result.FieldErrors,
		})
	case service.ActionNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return c.Redirect(http.StatusSeeOther, result.RedirectTo)
}

// bindProductForm reads the multipart submission. Missing attachments are
// left nil for the service to report.
func bindProductForm(c echo.Context) (*service.ProductForm, func(), error) {
	form := &service.ProductForm{
		Name:         c.FormValue("name"),
		Description:  c.FormValue("description"),
		PriceInCents: c.FormValue("priceInCents"),
	}

	var opened []multipart.File
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for field, dst := range map[string]**service.Upload{
		"file":  &form.File,
		"image": &form.Image,
	} {
		fh, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			closeFiles()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
		}

		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return nil, nil, err
		}
		opened = append(opened, f)

		*dst = &service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}
	}

	return form, closeFiles, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"storefront-demo/internal/model"
	"storefront-demo/internal/repository"
	"storefront-demo/internal/storage"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ProductsRedirect is where the admin UI goes after a successful mutation.
const ProductsRedirect = "/admin/products"

const (
	productFilePrefix  = "products"
	productImagePrefix = "/products"
)

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (u *Upload) empty() bool {
	return u == nil || u.Size == 0
}

// ProductForm is the raw admin submission. PriceInCents is kept as
// submitted so that a bad value can be reported next to the field.
type ProductForm struct {
	Name         string
	Description  string
	PriceInCents string
	File         *Upload
	Image        *Upload
}

type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

type ActionStatus int

const (
	ActionRedirect ActionStatus = iota
	ActionInvalid
	ActionNotFound
)

type ActionResult struct {
	Status      ActionStatus
	RedirectTo  string
	FieldErrors FieldErrors
	Product     *model.Product
}

func redirectTo(product *model.Product) *ActionResult {
	return &ActionResult{Status: ActionRedirect, RedirectTo: ProductsRedirect, Product: product}
}

type ProductService interface {
	CreateProduct(ctx context.Context, form *ProductForm) (*ActionResult, error)
	UpdateProduct(ctx context.Context, productID string, form *ProductForm) (*ActionResult, error)
	ToggleAvailability(ctx context.Context, productID string, available bool) error
	DeleteProduct(ctx context.Context, productID string) error
	ListProducts(ctx context.Context) ([]*repository.ProductSummary, error)
	DownloadProductFile(ctx context.Context, productID string) (*Download, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	files       storage.Store
	images      storage.Store
}

func NewProductService(
	productRepo repository.ProductRepository,
	files storage.Store,
	images storage.Store,
) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		files:       files,
		images:      images,
	}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, form *ProductForm) (*ActionResult, error) {
	price, fieldErrors := validateProductForm(form, true)
	if len(fieldErrors) > 0 {
		return &ActionResult{Status: ActionInvalid, FieldErrors: fieldErrors}, nil
	}

	filePath := storage.NewKey(productFilePrefix, form.File.Filename)
	if err := s.files.Put(ctx, filePath, form.File.Content); err != nil {
		return nil, fmt.Errorf("store product file: %w", err)
	}

	imagePath := storage.NewKey(productImagePrefix, form.Image.Filename)
	if err := s.images.Put(ctx, imagePath, form.Image.Content); err != nil {
		return nil, fmt.Errorf("store product image: %w", err)
	}

	product := &model.Product{
		ID:                     uuid.NewString(),
		Name:                   form.Name,
		Description:            form.Description,
		PriceInCents:           price,
		FilePath:               filePath,
		ImagePath:              imagePath,
		IsAvailableForPurchase: false,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return redirectTo(product), nil
}

// UpdateProduct replaces attachments only when a non-empty one was
// submitted, and always takes the product off sale until it is toggled
// back on.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID string, form *ProductForm) (*ActionResult, error) {
	price, fieldErrors := validateProductForm(form, false)
	if len(fieldErrors) > 0 {
		return &ActionResult{Status: ActionInvalid, FieldErrors: fieldErrors}, nil
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(translateNotFound(err), ErrNotFound) {
			return &ActionResult{Status: ActionNotFound}, nil
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if !form.File.empty() {
		if err := s.files.Delete(ctx, product.FilePath); err != nil {
			return nil, fmt.Errorf("delete old product file: %w", err)
		}
		product.FilePath = storage.NewKey(productFilePrefix, form.File.Filename)
		if err := s.files.Put(ctx, product.FilePath, form.File.Content); err != nil {
			return nil, fmt.Errorf("store product file: %w", err)
		}
	}

	if !form.Image.empty() {
		if err := s.images.Delete(ctx, product.ImagePath); err != nil {
			return nil, fmt.Errorf("delete old product image: %w", err)
		}
		product.ImagePath = storage.NewKey(productImagePrefix, form.Image.Filename)
		if err := s.images.Put(ctx, product.ImagePath, form.Image.Content); err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
	}

	product.Name = form.Name
	product.Description = form.Description
	product.PriceInCents = price
	product.IsAvailableForPurchase = false

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return redirectTo(product), nil
}

func (s *productServiceImpl) ToggleAvailability(ctx context.Context, productID string, available bool) error {
	if err := s.productRepo.SetAvailability(ctx, productID, available); err != nil {
		return translateNotFound(err)
	}
	return nil
}

// DeleteProduct removes the row before the files. A failed unlink leaves
// an orphan file behind, never a row pointing at a missing file.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return translateNotFound(err)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", translateNotFound(err))
	}

	if err := s.files.Delete(ctx, product.FilePath); err != nil {
		return fmt.Errorf("delete product file: %w", err)
	}
	if err := s.images.Delete(ctx, product.ImagePath); err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}

	return nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]*repository.ProductSummary, error) {
	return s.productRepo.ListSummaries(ctx)
}

func (s *productServiceImpl) DownloadProductFile(ctx context.Context, productID string) (*Download, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return openDownload(ctx, s.files, product)
}

func validateProductForm(form *ProductForm, requireFiles bool) (int64, FieldErrors) {
	fieldErrors := FieldErrors{}

	if len(form.Name) == 0 {
		fieldErrors.add("name", "Required")
	}
	if len(form.Description) == 0 {
		fieldErrors.add("description", "Required")
	}

	price, msg := parsePrice(form.PriceInCents)
	if msg != "" {
		fieldErrors.add("priceInCents", msg)
	}

	if requireFiles && form.File.empty() {
		fieldErrors.add("file", "Required")
	}

	if requireFiles && form.Image.empty() {
		fieldErrors.add("image", "Required")
	} else if !form.Image.empty() && !strings.HasPrefix(form.Image.ContentType, "image/") {
		fieldErrors.add("image", "Must be an image")
	}

	return price, fieldErrors
}

// parsePrice accepts any whole number of cents, "12" as well as "12.0".
func parsePrice(raw string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Number must be greater than or equal to 1"
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "Expected number, received nan"
	}
	if f != math.Trunc(f) {
		return 0, "Expected integer, received float"
	}
	if f < 1 {
		return 0, "Number must be greater than or equal to 1"
	}
	if f > math.MaxInt32 {
		return 0, "Number must be less than or equal to 2147483647"
	}

	return int64(f), ""
}

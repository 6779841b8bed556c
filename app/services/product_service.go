// Package services holds the business rules between the HTTP controllers
// and the repositories.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/logger"
	"github.com/treasuryofflair/flairmarket/pkg/metrics"
	"github.com/treasuryofflair/flairmarket/pkg/orm"
)

// TaskRunner runs fire-and-forget tasks off the request path. A full pool
// just means the task is skipped; nothing user-visible depends on it.
type TaskRunner interface {
	Submit(task func()) error
}

// ProductView is the public projection of a listing. The internal numeric
// id never leaves the service layer.
type ProductView struct {
	UUID      string  `json:"uuid"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	Image     *string `json:"image"`
	Views     uint    `json:"views"`
	Likes     uint    `json:"likes"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateProductInput is the validated create payload.
type CreateProductInput struct {
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	Category string  `json:"category" validate:"nullable,max=100"`
	Price    float64 `json:"price" validate:"nullable,numeric,gte=0"`
	Status   string  `json:"status" validate:"nullable,in=active,sold,draft"`
}

// UpdateProductInput carries partial update semantics: nil means the field
// keeps its stored value.
type UpdateProductInput struct {
	Title    *string
	Category *string
	Price    *float64
	Status   *string
}

// ProductService implements the listing operations.
type ProductService struct {
	products *repositories.ProductRepository
	tasks    TaskRunner
	cleanup  func(path string) // best-effort blob removal, queued
}

// NewProductService wires the service. cleanup may be nil when no blob
// store is attached (tests).
func NewProductService(products *repositories.ProductRepository, tasks TaskRunner, cleanup func(path string)) *ProductService {
	return &ProductService{products: products, tasks: tasks, cleanup: cleanup}
}

// toView builds the public projection, absolutizing a relative image path
// against the request's base URL. Already-absolute URLs pass through.
func toView(p models.Product, baseURL string) ProductView {
	view := ProductView{
		UUID:      p.UUID,
		Title:     p.Title,
		Category:  p.Category,
		Price:     p.Price,
		Status:    p.Status,
		Views:     p.Views,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.Image != nil {
		img := absolutize(*p.Image, baseURL)
		view.Image = &img
	}
	return view
}

func absolutize(path, baseURL string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func toViews(products []models.Product, baseURL string) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p, baseURL))
	}
	return views
}

// List returns the filtered catalogue page. An empty result is an empty
// slice with total 0, not an error.
func (s *ProductService) List(filter repositories.ProductFilter, baseURL string) ([]ProductView, orm.Pagination, error) {
	products, meta, err := s.products.Search(filter)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	return toViews(products, baseURL), meta, nil
}

// Get fetches a single listing by external id and records a view. The view
// bump runs detached; the response never waits for it.
func (s *ProductService) Get(productUUID, baseURL string) (ProductView, error) {
	product, err := s.products.FindByUUID(productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductView{}, apperr.NotFound("Product not found")
		}
		return ProductView{}, err
	}

	id := product.ID
	if err := s.tasks.Submit(func() {
		if err := s.products.IncrementViews(id); err != nil {
			logger.Debug("view increment failed", "product_id", id, "error", err)
			return
		}
		metrics.ProductViews.Inc()
	}); err != nil {
		logger.Debug("view increment skipped", "product_id", id, "error", err)
	}

	return toView(product, baseURL), nil
}

// Create persists a new listing for sellerID. imagePath is the
// disk-relative upload path, or "" when no image was sent.
func (s *ProductService) Create(sellerID uint, input CreateProductInput, imagePath, baseURL string) (ProductView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ProductView{}, apperr.Validation("Title is required")
	}
	if input.Price < 0 {
		return ProductView{}, apperr.Validation("Price must not be negative")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	status := input.Status
	if status == "" {
		status = models.StatusActive
	}
	if !models.ValidStatus(status) {
		return ProductView{}, apperr.Validation("Status must be one of active, sold, draft")
	}

	product := models.Product{
		SellerID: &sellerID,
		UUID:     uuid.NewString(),
		Title:    title,
		Category: category,
		Price:    input.Price,
		Status:   status,
	}
	if imagePath != "" {
		product.Image = &imagePath
	}

	if err := s.products.Create(&product); err != nil {
		return ProductView{}, err
	}

	return toView(product, baseURL), nil
}

// findOwned loads a product and enforces the ordered checks: 404 when the
// row is gone, 403 when it belongs to someone else. Only then may the
// caller mutate.
func (s *ProductService) findOwned(sellerID uint, productUUID string) (models.Product, error) {
	product, err := s.products.FindByUUID(productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, apperr.NotFound("Product not found")
		}
		return models.Product{}, err
	}
	if product.SellerID == nil || *product.SellerID != sellerID {
		return models.Product{}, apperr.Forbidden("You do not own this product")
	}
	return product, nil
}

// Update applies a partial update to an owned listing. A replaced image
// queues best-effort removal of the old blob.
func (s *ProductService) Update(sellerID uint, productUUID string, input UpdateProductInput, imagePath, baseURL string) (ProductView, error) {
	product, err := s.findOwned(sellerID, productUUID)
	if err != nil {
		return ProductView{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ProductView{}, apperr.Validation("Title must not be empty")
		}
		product.Title = title
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			category = models.DefaultCategory
		}
		product.Category = category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return ProductView{}, apperr.Validation("Price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return ProductView{}, apperr.Validation("Status must be one of active, sold, draft")
		}
		product.Status = *input.Status
	}

	var oldImage string
	if imagePath != "" {
		if product.Image != nil {
			oldImage = *product.Image
		}
		product.Image = &imagePath
	}

	if err := s.products.Save(&product); err != nil {
		return ProductView{}, err
	}

	if oldImage != "" && s.cleanup != nil {
		s.cleanup(oldImage)
	}

	return toView(product, baseURL), nil
}

// Delete removes an owned listing and queues removal of its image blob.
// Deleting the same uuid twice yields NotFound the second time.
func (s *ProductService) Delete(sellerID uint, productUUID string) error {
	product, err := s.findOwned(sellerID, productUUID)
	if err != nil {
		return err
	}

	if err := s.products.Delete(&product); err != nil {
		return err
	}

	if product.Image != nil && s.cleanup != nil {
		s.cleanup(*product.Image)
	}

	return nil
}

// Mine returns the seller's own listings, newest first, regardless of
// status.
func (s *ProductService) Mine(sellerID uint, baseURL string) ([]ProductView, error) {
	products, err := s.products.BySeller(sellerID)
	if err != nil {
		return nil, err
	}
	return toViews(products, baseURL), nil
}

// Package repositories holds the database access layer. Every repository
// receives its *gorm.DB at construction; there is no ambient connection.
package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/pkg/orm"
)

// DefaultLimit is the page size applied when the caller does not ask for one.
const DefaultLimit = 50

// ProductFilter is the normalized search input for the public catalogue.
type ProductFilter struct {
	Search   string
	Category string
	Status   string
	Sort     string
	Page     int
	Limit    int
}

// Normalize applies the catalogue defaults: status "active" unless the
// caller asked for something (the "all" sentinel lifts the filter), page
// clamped to 1, limit defaulted.
func (f *ProductFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	if strings.TrimSpace(f.Status) == "" {
		f.Status = models.StatusActive
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
}

// sortOrders is the closed set of sort keys. Values are SQL fragments and
// user input is only ever used to look keys up, never interpolated.
var sortOrders = map[string]string{
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"price-high": "price DESC",
	"price-low":  "price ASC",
	"views":      "views DESC",
}

// Order returns the ORDER BY fragment for the filter's sort key, falling
// back to newest for anything unrecognized.
func (f *ProductFilter) Order() string {
	if order, ok := sortOrders[f.Sort]; ok {
		return order
	}
	return sortOrders["newest"]
}

// Scope builds the WHERE predicate for the filter. The same scope feeds
// both the count and the row query, so the reported total can never drift
// from the rows it describes.
func (f *ProductFilter) Scope() orm.Scope {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Product{})

		if f.Search != "" {
			like := "%" + f.Search + "%"
			tx = tx.Where("LOWER(title) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", like, like)
		}
		if f.Category != "" && f.Category != "all" {
			tx = tx.Where("category = ?", f.Category)
		}
		if f.Status != "all" {
			tx = tx.Where("status = ?", f.Status)
		}

		return tx
	}
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Search returns the filtered page of products plus pagination meta built
// from the same predicate.
func (r *ProductRepository) Search(filter ProductFilter) ([]models.Product, orm.Pagination, error) {
	filter.Normalize()

	var products []models.Product
	meta, err := orm.Paginate(r.db, filter.Scope(), filter.Order(), filter.Page, filter.Limit, &products)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, meta, nil
}

// FindByUUID looks up a product by its external id.
func (r *ProductRepository) FindByUUID(uuid string) (models.Product, error) {
	var product models.Product
	err := r.db.Where("uuid = ?", uuid).First(&product).Error
	return product, err
}

// BySeller returns all of one seller's products, newest first.
func (r *ProductRepository) BySeller(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	if products == nil {
		products = []models.Product{}
	}
	return products, err
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Save persists changes to an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product row by primary key.
func (r *ProductRepository) Delete(product *models.Product) error {
	return r.db.Delete(product).Error
}

// IncrementViews bumps the view counter atomically in SQL so concurrent
// bumps never lose updates.
func (r *ProductRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

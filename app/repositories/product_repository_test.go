package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck

	require.NoError(t, db.AutoMigrate(&models.Seller{}, &models.Product{}, &models.Artwork{}, &models.Account{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID *uint, title, category, status string, price float64) models.Product {
	t.Helper()

	p := models.Product{
		SellerID: sellerID,
		UUID:     uuid.NewString(),
		Title:    title,
		Category: category,
		Status:   status,
		Price:    price,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedSeller(t *testing.T, db *gorm.DB, email string) models.Seller {
	t.Helper()

	s := models.Seller{Name: "Seller", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func TestSearchTotalMatchesPredicate(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	seedProduct(t, db, nil, "Brass Lamp", "decor", models.StatusActive, 10)
	seedProduct(t, db, nil, "Brass Bowl", "decor", models.StatusActive, 20)
	seedProduct(t, db, nil, "Chess Set", "games", models.StatusActive, 30)
	seedProduct(t, db, nil, "Brass Kettle", "kitchen", models.StatusSold, 40)
	seedProduct(t, db, nil, "Sketchbook", "decor", models.StatusDraft, 5)

	cases := []struct {
		name   string
		filter repositories.ProductFilter
		want   int64
	}{
		{"default status only active", repositories.ProductFilter{}, 3},
		{"search narrows", repositories.ProductFilter{Search: "brass"}, 2},
		{"search plus status all", repositories.ProductFilter{Search: "brass", Status: "all"}, 3},
		{"category exact", repositories.ProductFilter{Category: "decor"}, 2},
		{"category all sentinel", repositories.ProductFilter{Category: "all"}, 3},
		{"status sold", repositories.ProductFilter{Status: models.StatusSold}, 1},
		{"no match", repositories.ProductFilter{Search: "zzz"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, meta, err := repo.Search(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, meta.Total)
			assert.Len(t, products, int(tc.want))
		})
	}
}

func TestSearchTotalCountsBeyondPage(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	for i := 0; i < 7; i++ {
		seedProduct(t, db, nil, fmt.Sprintf("Lamp %d", i), "decor", models.StatusActive, float64(i))
	}

	products, meta, err := repo.Search(repositories.ProductFilter{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, int64(7), meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 3, meta.Limit)

	products, meta, err = repo.Search(repositories.ProductFilter{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(7), meta.Total)
}

func TestSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	seedProduct(t, db, nil, "Vintage CAMERA", "electronics", models.StatusActive, 100)

	for _, q := range []string{"camera", "CAMERA", "CaMeRa", "electro"} {
		products, meta, err := repo.Search(repositories.ProductFilter{Search: q})
		require.NoError(t, err)
		assert.Equal(t, int64(1), meta.Total, "query %q", q)
		require.Len(t, products, 1)
	}
}

func TestSearchSortOrders(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	a := seedProduct(t, db, nil, "A", "decor", models.StatusActive, 30)
	b := seedProduct(t, db, nil, "B", "decor", models.StatusActive, 10)
	c := seedProduct(t, db, nil, "C", "decor", models.StatusActive, 20)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", b.ID).Update("views", 9).Error)

	cases := []struct {
		sort  string
		first string
	}{
		{"price-high", a.Title},
		{"price-low", b.Title},
		{"views", b.Title},
	}
	for _, tc := range cases {
		products, _, err := repo.Search(repositories.ProductFilter{Sort: tc.sort})
		require.NoError(t, err)
		require.NotEmpty(t, products)
		assert.Equal(t, tc.first, products[0].Title, "sort %q", tc.sort)
	}

	// Unknown keys fall back to newest; no error, no injection surface.
	products, _, err := repo.Search(repositories.ProductFilter{Sort: "price; DROP TABLE products"})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	_ = c
}

func TestSearchEmptyResultIsEmptySlice(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	products, meta, err := repo.Search(repositories.ProductFilter{Search: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, int64(0), meta.Total)
}

func TestNormalizeClampsPageAndLimit(t *testing.T) {
	f := repositories.ProductFilter{Page: -2, Limit: 0}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, repositories.DefaultLimit, f.Limit)
	assert.Equal(t, models.StatusActive, f.Status)
}

func TestBySellerNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	seller := seedSeller(t, db, "s@example.com")
	other := seedSeller(t, db, "o@example.com")

	first := seedProduct(t, db, &seller.ID, "First", "decor", models.StatusActive, 1)
	second := seedProduct(t, db, &seller.ID, "Second", "decor", models.StatusDraft, 2)
	seedProduct(t, db, &other.ID, "Not mine", "decor", models.StatusActive, 3)

	// Force distinct created_at values; sqlite timestamps can collide
	// within one test run.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", first.ID).
		Update("created_at", "2026-01-01 00:00:00").Error)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", second.ID).
		Update("created_at", "2026-02-01 00:00:00").Error)

	products, err := repo.BySeller(seller.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Second", products[0].Title)
	assert.Equal(t, "First", products[1].Title)
}

func TestIncrementViews(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	p := seedProduct(t, db, nil, "Viewed", "decor", models.StatusActive, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViews(p.ID))
	}

	got, err := repo.FindByUUID(p.UUID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.Views)
}

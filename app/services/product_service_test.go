package services_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/database"
)

const baseURL = "http://shop.test"

// inlineRunner executes tasks synchronously so side effects are visible to
// assertions immediately.
type inlineRunner struct{}

func (inlineRunner) Submit(task func()) error {
	task()
	return nil
}

// cleanupRecorder collects blob paths handed to the cleanup hook.
type cleanupRecorder struct {
	paths []string
}

func (c *cleanupRecorder) record(path string) {
	c.paths = append(c.paths, path)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck

	require.NoError(t, db.AutoMigrate(&models.Seller{}, &models.Product{}, &models.Artwork{}, &models.Account{}))
	return db
}

func newProductService(t *testing.T) (*services.ProductService, *gorm.DB, *cleanupRecorder) {
	t.Helper()

	db := newTestDB(t)
	rec := &cleanupRecorder{}
	svc := services.NewProductService(repositories.NewProductRepository(db), inlineRunner{}, rec.record)
	return svc, db, rec
}

func createSeller(t *testing.T, db *gorm.DB, email string) models.Seller {
	t.Helper()

	s := models.Seller{Name: "Seller", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	view, err := svc.Create(seller.ID, services.CreateProductInput{Title: "  Clay Pot  "}, "", baseURL)
	require.NoError(t, err)

	assert.Equal(t, "Clay Pot", view.Title)
	assert.Equal(t, models.DefaultCategory, view.Category)
	assert.Equal(t, models.StatusActive, view.Status)
	assert.Len(t, view.UUID, 36)
	assert.Nil(t, view.Image)
	assert.Zero(t, view.Views)
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	cases := []struct {
		name  string
		input services.CreateProductInput
	}{
		{"blank title", services.CreateProductInput{Title: "   "}},
		{"negative price", services.CreateProductInput{Title: "Pot", Price: -1}},
		{"unknown status", services.CreateProductInput{Title: "Pot", Status: "archived"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(seller.ID, tc.input, "", baseURL)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		})
	}
}

func TestGetRecordsView(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	created, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, "", baseURL)
	require.NoError(t, err)

	// The stale count travels in the response; the bump lands after.
	view, err := svc.Get(created.UUID, baseURL)
	require.NoError(t, err)
	assert.Equal(t, uint(0), view.Views)

	view, err = svc.Get(created.UUID, baseURL)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.Views)
}

func TestGetUnknownUUIDIsNotFound(t *testing.T) {
	svc, _, _ := newProductService(t)

	_, err := svc.Get("no-such-uuid", baseURL)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestImageAbsolutized(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	view, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, "uploads/pot.jpg", baseURL)
	require.NoError(t, err)
	require.NotNil(t, view.Image)
	assert.Equal(t, baseURL+"/uploads/pot.jpg", *view.Image)
}

func TestAbsoluteImagePassesThrough(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	external := "https://cdn.example.com/pot.jpg"
	view, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, external, baseURL)
	require.NoError(t, err)
	require.NotNil(t, view.Image)
	assert.Equal(t, external, *view.Image)
}

func TestUpdateIsPartial(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	created, err := svc.Create(seller.ID, services.CreateProductInput{
		Title:    "Pot",
		Category: "ceramics",
		Price:    25,
	}, "", baseURL)
	require.NoError(t, err)

	price := 30.0
	view, err := svc.Update(seller.ID, created.UUID, services.UpdateProductInput{Price: &price}, "", baseURL)
	require.NoError(t, err)

	assert.Equal(t, 30.0, view.Price)
	assert.Equal(t, "Pot", view.Title)
	assert.Equal(t, "ceramics", view.Category)
	assert.Equal(t, models.StatusActive, view.Status)
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	created, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, "", baseURL)
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(seller.ID, created.UUID, services.UpdateProductInput{Title: &blank}, "", baseURL)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	svc, db, _ := newProductService(t)
	owner := createSeller(t, db, "owner@example.com")
	intruder := createSeller(t, db, "intruder@example.com")

	created, err := svc.Create(owner.ID, services.CreateProductInput{Title: "Pot"}, "", baseURL)
	require.NoError(t, err)

	title := "Stolen"
	_, err = svc.Update(intruder.ID, created.UUID, services.UpdateProductInput{Title: &title}, "", baseURL)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
}

func TestUpdateMissingProductIs404NotForbidden(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	title := "Ghost"
	_, err := svc.Update(seller.ID, "no-such-uuid", services.UpdateProductInput{Title: &title}, "", baseURL)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestUpdateReplacingImageCleansOldBlob(t *testing.T) {
	svc, db, rec := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	created, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, "uploads/old.jpg", baseURL)
	require.NoError(t, err)

	view, err := svc.Update(seller.ID, created.UUID, services.UpdateProductInput{}, "uploads/new.jpg", baseURL)
	require.NoError(t, err)
	require.NotNil(t, view.Image)
	assert.Equal(t, baseURL+"/uploads/new.jpg", *view.Image)
	assert.Equal(t, []string{"uploads/old.jpg"}, rec.paths)
}

func TestDeleteCleansImageAndThen404s(t *testing.T) {
	svc, db, rec := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	created, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Pot"}, "uploads/pot.jpg", baseURL)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(seller.ID, created.UUID))
	assert.Equal(t, []string{"uploads/pot.jpg"}, rec.paths)

	err = svc.Delete(seller.ID, created.UUID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	svc, db, rec := newProductService(t)
	owner := createSeller(t, db, "owner@example.com")
	intruder := createSeller(t, db, "intruder@example.com")

	created, err := svc.Create(owner.ID, services.CreateProductInput{Title: "Pot"}, "", baseURL)
	require.NoError(t, err)

	err = svc.Delete(intruder.ID, created.UUID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))
	assert.Empty(t, rec.paths)
}

func TestMineReturnsAllOwnStatuses(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")
	other := createSeller(t, db, "o@example.com")

	_, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Active one"}, "", baseURL)
	require.NoError(t, err)
	_, err = svc.Create(seller.ID, services.CreateProductInput{Title: "Draft one", Status: models.StatusDraft}, "", baseURL)
	require.NoError(t, err)
	_, err = svc.Create(other.ID, services.CreateProductInput{Title: "Not mine"}, "", baseURL)
	require.NoError(t, err)

	mine, err := svc.Mine(seller.ID, baseURL)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestListHidesDraftsByDefault(t *testing.T) {
	svc, db, _ := newProductService(t)
	seller := createSeller(t, db, "s@example.com")

	_, err := svc.Create(seller.ID, services.CreateProductInput{Title: "Public"}, "", baseURL)
	require.NoError(t, err)
	_, err = svc.Create(seller.ID, services.CreateProductInput{Title: "Hidden", Status: models.StatusDraft}, "", baseURL)
	require.NoError(t, err)

	views, meta, err := svc.List(repositories.ProductFilter{}, baseURL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, views, 1)
	assert.Equal(t, "Public", views[0].Title)
}

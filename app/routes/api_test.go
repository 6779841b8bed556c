package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/routes"
	"github.com/treasuryofflair/flairmarket/pkg/database"
	"github.com/treasuryofflair/flairmarket/pkg/router"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
	"github.com/treasuryofflair/flairmarket/pkg/workerpool"
)

// pngHeader is the magic-byte prefix content sniffing recognises as a PNG.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck
	require.NoError(t, db.AutoMigrate(&models.Seller{}, &models.Product{}, &models.Artwork{}, &models.Account{}))

	pool := workerpool.New(2)
	t.Cleanup(pool.Shutdown)

	r := router.New()
	routes.RegisterAPI(r, db, pool)
	return r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerSeller(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Mina",
		"email":    email,
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestProductLifecycle(t *testing.T) {
	h := newTestHandler(t)
	token := registerSeller(t, h, "mina@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/products", token, map[string]interface{}{
		"title":    "Clay Pot",
		"category": "ceramics",
		"price":    25,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode(t, rec)
	productUUID, _ := created["uuid"].(string)
	require.NotEmpty(t, productUUID)
	assert.Equal(t, "active", created["status"])

	rec = doJSON(t, h, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])

	rec = doJSON(t, h, http.MethodGet, "/api/products/"+productUUID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Clay Pot", decode(t, rec)["title"])

	rec = doJSON(t, h, http.MethodPut, "/api/products/"+productUUID, token, map[string]interface{}{
		"price": 30,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, float64(30), updated["price"])
	assert.Equal(t, "Clay Pot", updated["title"])

	rec = doJSON(t, h, http.MethodGet, "/api/my/products", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode(t, rec)
	assert.Len(t, mine["data"], 1)
	seller := mine["seller"].(map[string]interface{})
	assert.Equal(t, "mina@example.com", seller["email"])

	rec = doJSON(t, h, http.MethodDelete, "/api/products/"+productUUID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/products/"+productUUID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/some-uuid"},
		{http.MethodDelete, "/api/products/some-uuid"},
		{http.MethodGet, "/api/my/products"},
	}

	for _, tc := range cases {
		rec := doJSON(t, h, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s no token", tc.method, tc.path)

		rec = doJSON(t, h, tc.method, tc.path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s bad token", tc.method, tc.path)
	}
}

func TestOtherSellersProductIsForbidden(t *testing.T) {
	h := newTestHandler(t)
	owner := registerSeller(t, h, "owner@example.com")
	intruder := registerSeller(t, h, "intruder@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/products", owner, map[string]interface{}{"title": "Pot"})
	require.Equal(t, http.StatusCreated, rec.Code)
	productUUID := decode(t, rec)["uuid"].(string)

	rec = doJSON(t, h, http.MethodDelete, "/api/products/"+productUUID, intruder, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestMultipartCreateWithImage(t *testing.T) {
	h := newTestHandler(t)
	token := registerSeller(t, h, "mina@example.com")

	body, contentType := multipartBody(t,
		map[string]string{"title": "Framed Print", "price": "40"},
		"image", "print.png", append(pngHeader, make([]byte, 64)...))

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode(t, rec)
	image, _ := created["image"].(string)
	require.NotEmpty(t, image)
	assert.Contains(t, image, "/uploads/")
	assert.True(t, strings.HasSuffix(image, ".png"), image)
}

func TestMultipartRejectsNonImage(t *testing.T) {
	h := newTestHandler(t)
	token := registerSeller(t, h, "mina@example.com")

	body, contentType := multipartBody(t,
		map[string]string{"title": "Sneaky", "price": "1"},
		"image", "script.sh", []byte("#!/bin/sh\nrm -rf /\n"))

	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestArtworkSearchEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/search?q=sunset", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

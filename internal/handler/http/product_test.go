package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SftwreDev/talipapaup-backend/internal/domain"
	"github.com/SftwreDev/talipapaup-backend/internal/service"
	apperrors "github.com/SftwreDev/talipapaup-backend/pkg/errors"
)

func productTestHandler(repo *mockProductRepo) *ProductHandler {
	svc := service.NewProductService(repo, cartTestEventProducer(), cartTestLogger())
	return NewProductHandler(svc, cartTestLogger())
}

func productRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)
		r.Post("/", handler.CreateProduct)
		r.Put("/{id}", handler.UpdateProduct)
		r.Delete("/{id}", handler.DeleteProduct)
	})
	return r
}

func strPtr(s string) *string { return &s }

func sampleProduct() *domain.Product {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:          uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		ProductName: "Bangus",
		Description: "Fresh milkfish",
		Price:       decimal.RequireFromString("9.99"),
		Category:    "Seafood",
		ImgURL:      strPtr("https://cdn.example.com/bangus.jpg"),
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	body := CreateProductRequest{
		ProductName: "Bangus",
		Description: "Fresh milkfish",
		Price:       decimal.RequireFromString("9.99"),
		Category:    "Seafood",
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeSuccess(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Product created successfully.", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bangus", data["product_name"])
	repo.AssertExpectations(t)
}

func TestCreateProduct_ValidationError(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	// Missing product_name and category.
	b, _ := json.Marshal(map[string]any{"price": "9.99"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.NotEmpty(t, resp.Fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Return(apperrors.AlreadyExists("product", "product_name", "Bangus"))

	body := CreateProductRequest{
		ProductName: "Bangus",
		Price:       decimal.RequireFromString("9.99"),
		Category:    "Seafood",
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	p := sampleProduct()
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSuccess(t, rec)
	assert.Equal(t, "Product fetched successfully.", resp.Message)
	repo.AssertExpectations(t)
}

func TestGetProduct_InvalidUUID(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Contains(t, resp.Detail, "invalid UUID")
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	missing := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, apperrors.NotFound("product", missing.String()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+missing.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts_Success(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	repo.On("List", mock.Anything).Return([]domain.Product{*sampleProduct()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSuccess(t, rec)
	assert.Equal(t, "Products fetched successfully.", resp.Message)

	entries, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]any)
	assert.Equal(t, "Bangus", entry["product_name"])
	repo.AssertExpectations(t)
}

func TestListProducts_Empty(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	repo.On("List", mock.Anything).Return([]domain.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "No products found.", resp.Detail)
}

func TestUpdateProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	p := sampleProduct()
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	newPrice := decimal.RequireFromString("12.50")
	body := UpdateProductRequest{Price: &newPrice}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+p.ID.String(), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSuccess(t, rec)
	assert.Equal(t, "Product updated successfully.", resp.Message)
	repo.AssertExpectations(t)
}

func TestDeleteProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	router := productRouter(productTestHandler(repo))

	p := sampleProduct()
	repo.On("Delete", mock.Anything, p.ID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSuccess(t, rec)
	assert.Equal(t, "Product deleted successfully.", resp.Message)
	repo.AssertExpectations(t)
}

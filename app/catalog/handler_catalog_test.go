package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mytheresa/go-inventory/models"
)

func newTestRouter(categories *MockCategoryRepo, products *MockProductRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(NewView(categories, products))
	r := gin.New()
	r.GET("/api/v1/catalog", handler.HandleGet)
	r.DELETE("/api/v1/catalog/products/:id", handler.HandleDeleteProduct)
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	assert.NoError(t, err)
	return resp
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	allCategories := []models.Category{
		{ID: 1, Name: "Tools"},
		{ID: 2, Name: "Garden"},
	}
	allMockProducts := []models.Product{
		newTestProduct(10, "Hammer", 20, 1),
		newTestProduct(11, "Drill", 80, 1),
		newTestProduct(12, "Rake", 15.75, 2),
		newTestProduct(13, "Lawn Mower", 6000, 2),
	}

	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() (*MockCategoryRepo, *MockProductRepo)
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Default filters",
			url:  "/api/v1/catalog",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Categories: allCategories}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, "All", resp.Sidebar.Category)
				assert.Equal(t, "5000", resp.Sidebar.MaxPrice.String())
				assert.Equal(t, []string{"All", "Tools", "Garden"}, resp.Sidebar.Options)
				assert.Equal(t, 4, resp.Catalog.TotalProducts)
				assert.Equal(t, []uint{10, 11, 12}, pageProductIDs(resp.Catalog), "mower is above the default max price")
				assert.Len(t, resp.Catalog.Categories, 2)
			},
		},
		{
			name: "Filter by category",
			url:  "/api/v1/catalog?category=Garden&max_price=10000",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Categories: allCategories}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, []uint{12, 13}, pageProductIDs(resp.Catalog))
				assert.Equal(t, "Garden", resp.Catalog.Products[0].CategoryName)
				assert.Equal(t, "15.75", resp.Catalog.Products[0].DisplayPrice)
			},
		},
		{
			name: "Search and max price",
			url:  "/api/v1/catalog?search=DRI&max_price=100",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Categories: allCategories}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, []uint{11}, pageProductIDs(resp.Catalog))
				assert.Equal(t, []DeleteOption{{ID: 11, Label: "Drill"}}, resp.Catalog.DeleteOptions)
			},
		},
		{
			name: "Empty result",
			url:  "/api/v1/catalog?category=Nonexistent",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Categories: allCategories}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Len(t, resp.Catalog.Products, 0)
				assert.Len(t, resp.Catalog.DeleteOptions, 0)
				assert.Equal(t, NoticeNoMatches, resp.Catalog.ProductsNotice)
			},
		},
		{
			name: "Invalid max price is ignored",
			url:  "/api/v1/catalog?max_price=abc",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Categories: allCategories}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, "5000", resp.Sidebar.MaxPrice.String())
				assert.Len(t, resp.Catalog.Products, 3)
			},
		},
		{
			name: "Repository errors are reported in the page",
			url:  "/api/v1/catalog?category=Tools",
			mockRepoSetup: func() (*MockCategoryRepo, *MockProductRepo) {
				return &MockCategoryRepo{Err: errors.New("db down")}, &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.Equal(t, "All", resp.Sidebar.Category, "selection falls back to All")
				assert.Contains(t, resp.Sidebar.OptionsError, "db down")
				assert.Equal(t, "failed to fetch categories: db down", resp.Catalog.CategoriesError)
				assert.Len(t, resp.Catalog.Products, 3)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			categories, products := tc.mockRepoSetup()
			router := newTestRouter(categories, products)
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleGetReadsCategoriesOnce(t *testing.T) {
	categories, products := toolsCatalog()
	router := newTestRouter(categories, products)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/catalog?category=Tools", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, categories.listCalls, "sidebar and catalog share one category read")
	resp := decodeResponse(t, rec)
	assert.Equal(t, []string{"All", "Tools"}, resp.Sidebar.Options)
	assert.Equal(t, []uint{10, 11}, pageProductIDs(resp.Catalog))
}

package products

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/go-inventory/models"
)

// --- Mock Repos ---

type MockCategoryRepo struct {
	Categories []models.Category
	ListErr    error
	ListCalls  int
}

func (m *MockCategoryRepo) GetAllCategories(_ context.Context) ([]models.Category, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

type MockProductRepo struct {
	InsertErr error
	Inserted  []models.Product
}

func (m *MockProductRepo) InsertProduct(_ context.Context, p *models.Product) error {
	m.Inserted = append(m.Inserted, *p)
	if m.InsertErr != nil {
		return m.InsertErr
	}
	p.ID = uint(len(m.Inserted)) + 9
	return nil
}

var toolsOnly = []models.Category{{ID: 1, Name: "Tools"}}

// --- Tests ---

func TestManagerForm(t *testing.T) {
	t.Run("Lists the known category names", func(t *testing.T) {
		categories := &MockCategoryRepo{Categories: []models.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Garden"}}}
		state, err := NewManager(categories, &MockProductRepo{}).Form(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Tools", "Garden"}, state.CategoryNames)
	})

	t.Run("No categories blocks the form", func(t *testing.T) {
		_, err := NewManager(&MockCategoryRepo{}, &MockProductRepo{}).Form(context.Background())
		assert.ErrorIs(t, err, models.ErrNoCategoriesAvailable)
	})

	t.Run("Store failure is returned", func(t *testing.T) {
		categories := &MockCategoryRepo{ListErr: &models.StoreError{Op: "select", Collection: "Categories", Err: errors.New("down")}}
		_, err := NewManager(categories, &MockProductRepo{}).Form(context.Background())
		var sErr *models.StoreError
		assert.ErrorAs(t, err, &sErr)
	})
}

func TestNewFormState(t *testing.T) {
	t.Run("Builds from the given read without another one", func(t *testing.T) {
		categories := &MockCategoryRepo{Categories: toolsOnly}
		snap := models.ReadCategories(context.Background(), categories)
		categories.Categories = append(categories.Categories, models.Category{ID: 2, Name: "Garden"})

		state, err := NewFormState(snap)
		require.NoError(t, err)
		assert.Equal(t, []string{"Tools"}, state.CategoryNames)
		assert.Equal(t, 1, categories.ListCalls)
	})

	t.Run("Failed read is returned", func(t *testing.T) {
		_, err := NewFormState(models.CategorySnapshot{Err: errors.New("down")})
		assert.EqualError(t, err, "down")
	})

	t.Run("Empty read blocks the form", func(t *testing.T) {
		_, err := NewFormState(models.CategorySnapshot{Lookup: models.NewCategoryLookup(nil)})
		assert.ErrorIs(t, err, models.ErrNoCategoriesAvailable)
	})
}

func TestManagerCreate(t *testing.T) {
	testCases := []struct {
		name        string
		input       ProductInput
		categories  *MockCategoryRepo
		products    *MockProductRepo
		checkErr    func(t *testing.T, err error)
		checkInsert func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Valid product produces exactly one insert",
			input: ProductInput{
				Name: "Hammer", Quantity: 3, Price: decimal.RequireFromString("19.999"), CategoryName: "Tools",
			},
			categories: &MockCategoryRepo{Categories: []models.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Garden"}}},
			products:   &MockProductRepo{},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				require.Len(t, repo.Inserted, 1)
				p := repo.Inserted[0]
				assert.Equal(t, "Hammer", p.Name)
				assert.Equal(t, 3, p.Quantity)
				assert.Equal(t, "20.00", p.DisplayPrice(), "price is kept at two decimals")
				assert.Equal(t, uint(1), p.CategoryID)
			},
		},
		{
			name:       "Defaults for quantity and price",
			input:      ProductInput{Name: " Rake ", CategoryName: "Garden"},
			categories: &MockCategoryRepo{Categories: []models.Category{{ID: 1, Name: "Tools"}, {ID: 2, Name: "Garden"}}},
			products:   &MockProductRepo{},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				require.Len(t, repo.Inserted, 1)
				assert.Equal(t, "Rake", repo.Inserted[0].Name)
				assert.Zero(t, repo.Inserted[0].Quantity)
				assert.True(t, repo.Inserted[0].Price.IsZero())
				assert.Equal(t, uint(2), repo.Inserted[0].CategoryID)
			},
		},
		{
			name:       "No categories blocks the submission",
			input:      ProductInput{Name: "Hammer", CategoryName: "Tools"},
			categories: &MockCategoryRepo{},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, models.ErrNoCategoriesAvailable)
			},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				assert.Empty(t, repo.Inserted)
			},
		},
		{
			name:       "Empty name is rejected",
			input:      ProductInput{Name: "   ", CategoryName: "Tools"},
			categories: &MockCategoryRepo{Categories: toolsOnly},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				var vErr *models.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "name", vErr.Field)
			},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				assert.Empty(t, repo.Inserted)
			},
		},
		{
			name:       "Negative quantity is rejected",
			input:      ProductInput{Name: "Hammer", Quantity: -1, CategoryName: "Tools"},
			categories: &MockCategoryRepo{Categories: toolsOnly},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				var vErr *models.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "quantity", vErr.Field)
			},
		},
		{
			name:       "Negative price is rejected",
			input:      ProductInput{Name: "Hammer", Price: decimal.NewFromInt(-5), CategoryName: "Tools"},
			categories: &MockCategoryRepo{Categories: toolsOnly},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				var vErr *models.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "price", vErr.Field)
			},
		},
		{
			name:       "Unknown category name is rejected",
			input:      ProductInput{Name: "Hammer", CategoryName: "Kitchen"},
			categories: &MockCategoryRepo{Categories: toolsOnly},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				var vErr *models.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "category_name", vErr.Field)
				assert.Equal(t, "unknown category: Kitchen", vErr.Message)
			},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				assert.Empty(t, repo.Inserted)
			},
		},
		{
			name:       "Store failure on insert is returned",
			input:      ProductInput{Name: "Hammer", CategoryName: "Tools"},
			categories: &MockCategoryRepo{Categories: toolsOnly},
			products: &MockProductRepo{InsertErr: &models.StoreError{
				Op: "insert", Collection: "Products", Err: errors.New("constraint violation"),
			}},
			checkErr: func(t *testing.T, err error) {
				var sErr *models.StoreError
				require.ErrorAs(t, err, &sErr)
				assert.Contains(t, err.Error(), "constraint violation")
			},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				assert.Len(t, repo.Inserted, 1, "no retry after a store failure")
			},
		},
		{
			name:       "Store failure on category read is returned",
			input:      ProductInput{Name: "Hammer", CategoryName: "Tools"},
			categories: &MockCategoryRepo{ListErr: &models.StoreError{Op: "select", Collection: "Categories", Err: errors.New("timeout")}},
			products:   &MockProductRepo{},
			checkErr: func(t *testing.T, err error) {
				var sErr *models.StoreError
				assert.ErrorAs(t, err, &sErr)
			},
			checkInsert: func(t *testing.T, repo *MockProductRepo) {
				assert.Empty(t, repo.Inserted)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			manager := NewManager(tc.categories, tc.products)

			product, err := manager.Create(context.Background(), tc.input)

			if tc.checkErr != nil {
				tc.checkErr(t, err)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, product.ID)
			}
			if tc.checkInsert != nil {
				tc.checkInsert(t, tc.products)
			}
		})
	}
}

func TestManagerCreateRebuildsLookupOnEverySubmission(t *testing.T) {
	ctx := context.Background()
	categories := &MockCategoryRepo{Categories: []models.Category{{ID: 1, Name: "Tools"}}}
	products := &MockProductRepo{}
	manager := NewManager(categories, products)

	_, err := manager.Create(ctx, ProductInput{Name: "Hammer", CategoryName: "Tools"})
	require.NoError(t, err)

	// Tools re-created out of band with a new id.
	categories.Categories = []models.Category{{ID: 7, Name: "Tools"}}
	_, err = manager.Create(ctx, ProductInput{Name: "Saw", CategoryName: "Tools"})
	require.NoError(t, err)

	require.Len(t, products.Inserted, 2)
	assert.Equal(t, uint(1), products.Inserted[0].CategoryID)
	assert.Equal(t, uint(7), products.Inserted[1].CategoryID)
	assert.Equal(t, 2, categories.ListCalls)
}

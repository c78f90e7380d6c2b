package categories

import (
	"context"
	"strings"

	"github.com/mytheresa/go-inventory/internal/validation"
	"github.com/mytheresa/go-inventory/models"
)

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	InsertCategory(ctx context.Context, category *models.Category) error
}

// CategoryInput is the Add Category form.
type CategoryInput struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Description string `json:"description" form:"description" validate:"max=1000"`
}

// Manager validates and submits new categories.
type Manager struct {
	repo CategoryProvider
}

func NewManager(r CategoryProvider) *Manager {
	return &Manager{repo: r}
}

// Create inserts one category. An empty name after trimming fails with a
// *models.ValidationError and nothing is sent to the store.
func (m *Manager) Create(ctx context.Context, in CategoryInput) (models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return models.Category{}, err
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
	}
	if err := m.repo.InsertCategory(ctx, category); err != nil {
		return models.Category{}, err
	}
	return *category, nil
}

// List reads the whole Categories collection.
func (m *Manager) List(ctx context.Context) ([]models.Category, error) {
	return m.repo.GetAllCategories(ctx)
}

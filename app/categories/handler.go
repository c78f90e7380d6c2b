package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mytheresa/go-inventory/internal/apierror"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryHandler struct {
	manager *Manager
}

func NewCategoryHandler(m *Manager) *CategoryHandler {
	return &CategoryHandler{manager: m}
}

// HandleGetAll GET /api/v1/categories
func (h *CategoryHandler) HandleGetAll(c *gin.Context) {
	categories, err := h.manager.List(c.Request.Context())
	if err != nil {
		apierror.Abort(c, "failed to fetch categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		}
	}
	c.JSON(http.StatusOK, response)
}

// HandleCreate POST /api/v1/categories
func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid JSON body"))
		return
	}

	category, err := h.manager.Create(c.Request.Context(), input)
	if err != nil {
		apierror.Abort(c, "failed to create category", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": CategoryResponse{ID: category.ID, Name: category.Name, Description: category.Description},
	})
}

package products

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mytheresa/go-inventory/internal/apierror"
)

type ProductResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	CategoryID uint    `json:"category_id"`
}

type ProductHandler struct {
	manager *Manager
}

func NewProductHandler(m *Manager) *ProductHandler {
	return &ProductHandler{manager: m}
}

// HandleForm GET /api/v1/products/form
func (h *ProductHandler) HandleForm(c *gin.Context) {
	state, err := h.manager.Form(c.Request.Context())
	if err != nil {
		apierror.Abort(c, "failed to load categories", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// HandleCreate POST /api/v1/products
func (h *ProductHandler) HandleCreate(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid JSON body"))
		return
	}

	product, err := h.manager.Create(c.Request.Context(), input)
	if err != nil {
		apierror.Abort(c, "failed to add product", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": ProductResponse{
			ID:         product.ID,
			Name:       product.Name,
			Quantity:   product.Quantity,
			Price:      product.Price.InexactFloat64(),
			CategoryID: product.CategoryID,
		},
	})
}

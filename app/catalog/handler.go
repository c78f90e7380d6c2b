package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mytheresa/go-inventory/app/sidebar"
	"github.com/mytheresa/go-inventory/internal/apierror"
)

type Response struct {
	Sidebar sidebar.State `json:"sidebar"`
	Catalog Page          `json:"catalog"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Response
}

type CatalogHandler struct {
	view *View
}

func NewCatalogHandler(v *View) *CatalogHandler {
	return &CatalogHandler{view: v}
}

// HandleGet GET /api/v1/catalog?search=&category=&max_price=
// Read failures are reported inside the page; the request itself succeeds.
func (h *CatalogHandler) HandleGet(c *gin.Context) {
	c.JSON(http.StatusOK, h.render(c))
}

// HandleDeleteProduct DELETE /api/v1/catalog/products/:id?search=&category=&max_price=
// Only a product listed under the given filters can be deleted. Responds with
// a fresh render cycle using the same sidebar query.
func (h *CatalogHandler) HandleDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}

	ctx := c.Request.Context()
	snap := h.view.ReadCategories(ctx)
	state := sidebar.Read(c.Request.URL.Query(), snap)
	if err := h.view.Delete(ctx, uint(id), state.Filters(), snap); err != nil {
		apierror.Abort(c, "failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Message:  "Product deleted",
		ID:       uint(id),
		Response: h.render(c),
	})
}

// render runs one refresh cycle: a single Category read shared by the
// sidebar and the catalog.
func (h *CatalogHandler) render(c *gin.Context) Response {
	ctx := c.Request.Context()
	snap := h.view.ReadCategories(ctx)
	state := sidebar.Read(c.Request.URL.Query(), snap)
	return Response{
		Sidebar: state,
		Catalog: h.view.Render(ctx, state.Filters(), snap),
	}
}

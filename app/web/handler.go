// Package web serves the single inventory page. Form posts redirect back to
// the page so every mutation is followed by a full refresh.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/go-inventory/app/catalog"
	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/app/sidebar"
	"github.com/mytheresa/go-inventory/internal/apierror"
	"github.com/mytheresa/go-inventory/internal/cache"
	"github.com/mytheresa/go-inventory/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ParamFlash carries the id of the message stored by the last form post.
// ParamNotice and ParamError carry the message itself when it could not be
// stored.
const (
	ParamFlash  = "flash"
	ParamNotice = "notice"
	ParamError  = "error"
)

// NoticeAddCategoryFirst replaces the Add Product form while no category exists.
const NoticeAddCategoryFirst = "Add a category first to be able to add products."

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// PageData is everything index.html renders.
type PageData struct {
	Sidebar     sidebar.State
	Catalog     catalog.Page
	Form        products.FormState
	FormNotice  string
	FormError   string
	Notice      string
	Error       string
	FilterQuery template.URL
}

type Handler struct {
	categories *categories.Manager
	products   *products.Manager
	view       *catalog.View
	flashes    cache.Flashes
}

func NewHandler(c *categories.Manager, p *products.Manager, v *catalog.View, f cache.Flashes) *Handler {
	return &Handler{
		categories: c,
		products:   p,
		view:       v,
		flashes:    f,
	}
}

// HandleIndex GET /?search=&category=&max_price=&flash=
// Sidebar, catalog and product form all render from one Category read.
func (h *Handler) HandleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Request.URL.Query()

	snap := h.view.ReadCategories(ctx)
	state := sidebar.Read(query, snap)
	flash := h.takeFlash(c, query)
	data := PageData{
		Sidebar:     state,
		Catalog:     h.view.Render(ctx, state.Filters(), snap),
		Notice:      flash.Notice,
		Error:       flash.Error,
		FilterQuery: template.URL(filterQuery(query).Encode()),
	}

	form, err := products.NewFormState(snap)
	switch {
	case errors.Is(err, models.ErrNoCategoriesAvailable):
		data.FormNotice = NoticeAddCategoryFirst
	case err != nil:
		data.FormError = apierror.Message("failed to load categories", err)
	default:
		data.Form = form
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// HandleCreateCategory POST /categories
func (h *Handler) HandleCreateCategory(c *gin.Context) {
	input := categories.CategoryInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	category, err := h.categories.Create(c.Request.Context(), input)
	if err != nil {
		h.redirect(c, cache.Flash{Error: apierror.Message("failed to add category", err)})
		return
	}
	h.redirect(c, cache.Flash{Notice: "Category added: " + category.Name})
}

// HandleCreateProduct POST /products
func (h *Handler) HandleCreateProduct(c *gin.Context) {
	input, err := productInput(c)
	if err != nil {
		h.redirect(c, cache.Flash{Error: err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), input)
	if err != nil {
		h.redirect(c, cache.Flash{Error: apierror.Message("failed to add product", err)})
		return
	}
	h.redirect(c, cache.Flash{Notice: "Product '" + product.Name + "' added."})
}

// HandleDeleteProduct POST /products/delete?search=&category=&max_price=
// Only a product listed under the posted filters can be deleted.
func (h *Handler) HandleDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 64)
	if err != nil || id == 0 {
		h.redirect(c, cache.Flash{Error: "Select a product to delete."})
		return
	}

	ctx := c.Request.Context()
	snap := h.view.ReadCategories(ctx)
	state := sidebar.Read(c.Request.URL.Query(), snap)
	if err := h.view.Delete(ctx, uint(id), state.Filters(), snap); err != nil {
		h.redirect(c, cache.Flash{Error: apierror.Message("failed to delete product", err)})
		return
	}
	h.redirect(c, cache.Flash{Notice: "Product deleted."})
}

// redirect sends the browser back to the page, keeping the current filters.
// The message travels in the URL only when the flash store is unavailable.
func (h *Handler) redirect(c *gin.Context, flash cache.Flash) {
	values := filterQuery(c.Request.URL.Query())
	id, err := h.flashes.Put(c.Request.Context(), flash)
	if err != nil {
		log.Warn().Err(err).Msg("failed to store flash message")
		setIfNotEmpty(values, ParamNotice, flash.Notice)
		setIfNotEmpty(values, ParamError, flash.Error)
	} else {
		values.Set(ParamFlash, id)
	}
	c.Redirect(http.StatusSeeOther, "/?"+values.Encode())
}

func (h *Handler) takeFlash(c *gin.Context, query url.Values) cache.Flash {
	fallback := cache.Flash{Notice: query.Get(ParamNotice), Error: query.Get(ParamError)}
	id := query.Get(ParamFlash)
	if id == "" {
		return fallback
	}

	flash, ok, err := h.flashes.Take(c.Request.Context(), id)
	if err != nil {
		log.Warn().Err(err).Str("flash_id", id).Msg("failed to read flash message")
		return fallback
	}
	if !ok {
		return fallback
	}
	return flash
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func filterQuery(query url.Values) url.Values {
	values := url.Values{}
	for _, key := range []string{sidebar.ParamSearch, sidebar.ParamCategory, sidebar.ParamMaxPrice} {
		if v, ok := query[key]; ok && len(v) > 0 {
			values.Set(key, v[0])
		}
	}
	return values
}

// productInput reads the Add Product form. Empty numeric fields default to zero.
func productInput(c *gin.Context) (products.ProductInput, error) {
	input := products.ProductInput{
		Name:         c.PostForm("name"),
		CategoryName: c.PostForm("category_name"),
	}

	if raw := strings.TrimSpace(c.PostForm("quantity")); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return input, models.NewValidationError("quantity", "quantity must be a whole number")
		}
		input.Quantity = quantity
	}

	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return input, models.NewValidationError("price", "price must be a number")
		}
		input.Price = price
	}
	return input, nil
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mytheresa/go-inventory/app/catalog"
	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/internal/cache"
	"github.com/mytheresa/go-inventory/internal/config"
	"github.com/mytheresa/go-inventory/internal/middleware"
	"github.com/mytheresa/go-inventory/models"
)

// New wires all dependencies and returns a configured Gin engine.
// A nil rdb keeps flash messages in process memory.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.SetHTMLTemplate(web.Templates())

	// Repositories
	categoryRepo := models.NewCategoriesRepository(db)
	productRepo := models.NewProductsRepository(db)

	var flashes cache.Flashes
	if rdb != nil {
		flashes = cache.NewRedisFlashes(rdb, cfg.FlashTTL)
	} else {
		flashes = cache.NewMemoryFlashes(cfg.FlashTTL)
	}

	// Managers
	categoryManager := categories.NewManager(categoryRepo)
	productManager := products.NewManager(categoryRepo, productRepo)
	catalogView := catalog.NewView(categoryRepo, productRepo)

	// Handlers
	pageH := web.NewHandler(categoryManager, productManager, catalogView, flashes)
	categoryH := categories.NewCategoryHandler(categoryManager)
	productH := products.NewProductHandler(productManager)
	catalogH := catalog.NewCatalogHandler(catalogView)

	r.GET("/health", Health(db, rdb))

	r.GET("/", pageH.HandleIndex)
	r.POST("/categories", pageH.HandleCreateCategory)
	r.POST("/products", pageH.HandleCreateProduct)
	r.POST("/products/delete", pageH.HandleDeleteProduct)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/categories", categoryH.HandleGetAll)
		v1.POST("/categories", categoryH.HandleCreate)

		v1.GET("/products/form", productH.HandleForm)
		v1.POST("/products", productH.HandleCreate)

		v1.GET("/catalog", catalogH.HandleGet)
		v1.DELETE("/catalog/products/:id", catalogH.HandleDeleteProduct)
	}

	return r
}

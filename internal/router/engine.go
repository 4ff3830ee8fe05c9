package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"kicharme.com.br/storefront/pkg/cart"
	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/checkout"
)

// CartSessions is the session cart persistence the handlers need; the Redis
// store implements it.
type CartSessions interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// Config carries the HTTP-level settings.
type Config struct {
	Env            string
	AllowedOrigins []string
	AdminUsername  string
	AdminKeyHash   string
}

// App bundles the handlers' dependencies. There is no package-level state;
// everything the routes touch is injected here.
type App struct {
	cfg      Config
	store    *catalog.Store
	users    catalog.UserDirectory
	carts    CartSessions
	composer *checkout.Composer
	validate *validator.Validate
}

// NewApp wires the application context the routes run against.
func NewApp(cfg Config, store *catalog.Store, users catalog.UserDirectory, carts CartSessions, composer *checkout.Composer) *App {
	return &App{
		cfg:      cfg,
		store:    store,
		users:    users,
		carts:    carts,
		composer: composer,
		validate: validator.New(),
	}
}

// Engine builds the gin engine with CORS and all routes registered.
func (a *App) Engine() *gin.Engine {
	if a.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Admin-User", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	a.registerRoutes(r)
	return r
}

func (a *App) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", a.HealthCheck)
		api.GET("/brands", a.ListBrands)
		api.GET("/categories", a.ListCategories)

		products := api.Group("/products")
		{
			products.GET("/", a.ListProducts)
			products.GET("/:id", a.GetProduct)
		}

		api.POST("/users/auth", a.AuthenticateUser)

		cartRoutes := api.Group("/cart")
		{
			cartRoutes.GET("/:sessionId", a.GetCart)
			cartRoutes.POST("/:sessionId/items", a.AddCartItem)
			cartRoutes.PUT("/:sessionId/items/:itemId", a.UpdateCartItem)
			cartRoutes.DELETE("/:sessionId/items/:itemId", a.RemoveCartItem)
			cartRoutes.DELETE("/:sessionId/clear", a.ClearCart)
			cartRoutes.POST("/:sessionId/checkout", a.Checkout)
		}

		admin := api.Group("/admin")
		admin.Use(a.AdminAuth())
		{
			admin.POST("/products", a.CreateProduct)
			admin.PUT("/products/:id", a.UpdateProduct)
			admin.DELETE("/products/:id", a.DeleteProduct)

			admin.POST("/brands", a.AddBrand)
			admin.PUT("/brands", a.RenameBrand)
			admin.DELETE("/brands/:name", a.DeleteBrand)

			admin.POST("/categories", a.AddCategory)
			admin.PUT("/categories", a.RenameCategory)
			admin.DELETE("/categories/:name", a.DeleteCategory)

			admin.GET("/users", a.ListUsers)
			admin.PUT("/users/:whatsapp/approve", a.ApproveUser)
			admin.DELETE("/users/:whatsapp", a.DeleteUser)

			admin.GET("/insights/catalog", a.CatalogInsights)
			admin.GET("/insights/discounts", a.DiscountInsights)
		}
	}
}

package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/commerce-service/internal/api/http/handlers"
	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Categories  *handlers.CategoriesHandler
	Products    *handlers.ProductsHandler
	Orders      *handlers.OrdersHandler
	Interceptor *auth.Interceptor
}

// RegisterRoutes wires HTTP routes. The interceptor runs on every /api route
// and only attaches identity; enforcement is the per-route guards and the
// ownership checks inside the handlers.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", cfg.Interceptor.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := api.Group("/users")
	users.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.Create)
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:id", auth.RequireAuthenticated(), cfg.Users.Get)
	users.Put("/:id", auth.RequireAuthenticated(), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	categories := api.Group("/categories")
	categories.Get("/search/name", cfg.Categories.SearchByName)
	categories.Get("/search/description", cfg.Categories.SearchByDescription)
	categories.Get("/search", cfg.Categories.Search)
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Create)
	categories.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Update)
	categories.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Categories.Delete)

	products := api.Group("/products")
	products.Get("/search", cfg.Products.Search)
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Products.Create)
	products.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Products.Update)
	products.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Products.Delete)

	orders := api.Group("/orders")
	orders.Get("/search", auth.RequireRole(domain.RoleAdmin), cfg.Orders.Search)
	orders.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Orders.List)
	orders.Post("/", auth.RequireAuthenticated(), cfg.Orders.Create)
	orders.Get("/:id", auth.RequireAuthenticated(), cfg.Orders.Get)
	orders.Get("/:id/items", auth.RequireAuthenticated(), cfg.Orders.ListItemsByOrder)
	orders.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Orders.Update)
	orders.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Orders.Delete)

	items := api.Group("/order-items", auth.RequireRole(domain.RoleAdmin))
	items.Post("/", cfg.Orders.CreateItem)
	items.Get("/", cfg.Orders.ListItems)
	items.Get("/:id", cfg.Orders.GetItem)
	items.Put("/:id", cfg.Orders.UpdateItem)
	items.Delete("/:id", cfg.Orders.DeleteItem)
}

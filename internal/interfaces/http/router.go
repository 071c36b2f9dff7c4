package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/purchasing"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	StoreUC   *usecase.StoreUseCase
	OrderUC   *purchasing.OrderUseCase
	Log       *logger.Logger

	// Authenticator valida el Bearer Token; nil → AuthUC.
	Authenticator Authenticator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authn := deps.Authenticator
	if authn == nil {
		authn = deps.AuthUC
	}
	requireAuth := AuthMiddleware(authn)

	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log.Component("http")))

	// Auth (público salvo logout)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/exists", authHandler.Exists)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	api.Get("/me", requireAuth, authHandler.Me)

	// Users (ADMIN)
	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:email", userHandler.GetByEmail)
	users.Delete("/:email", userHandler.Delete)
	users.Patch("/:email/role", userHandler.ChangeRole)
	users.Post("/:email/manager", userHandler.GrantManager)

	// Products; las rutas fijas antes de /:id
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/expired", productHandler.ListExpired)
	products.Get("/expired/report", productHandler.ExpiredReport)
	products.Get("/markdown", productHandler.ListMarkdown)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/quantity", productHandler.UpdateQuantity)

	// Purchase orders
	orders := api.Group("/purchase-orders", requireAuth)
	orderHandler := NewPurchaseOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:po", orderHandler.Get)
	orders.Patch("/:po", orderHandler.Update)
	orders.Delete("/:po", orderHandler.Delete)
	orders.Get("/:po/pdf", orderHandler.Sheet)

	// Stores
	stores := api.Group("/stores", requireAuth)
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", storeHandler.Create)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)
}

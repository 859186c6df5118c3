package router

import (
	"github.com/JonasWeidner/ShopFox/app/controllers"
	"github.com/JonasWeidner/ShopFox/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	api.Get("/products", controllers.HandleListProducts)
	api.Get("/checkout-session", controllers.HandleGetCheckoutSession)
	api.Post("/checkout-session", middleware.RequireAuth, controllers.HandleCreateCheckoutSession)
	api.Get("/purchases", middleware.RequireAuth, controllers.HandleListPurchases)
	api.Get("/me", middleware.RequireAuth, controllers.HandleCurrentUser)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

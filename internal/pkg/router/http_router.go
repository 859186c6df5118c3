package router

import (
	"log"

	"github.com/JonasWeidner/ShopFox/app/controllers"
	"github.com/JonasWeidner/ShopFox/internal/pkg/middleware"
	"github.com/JonasWeidner/ShopFox/internal/pkg/oauth"
	"github.com/JonasWeidner/ShopFox/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize payment controllers with the provider client
	if err := controllers.InitializePaymentControllers(); err != nil {
		log.Fatalf("failed to initialize payment controllers: %v", err)
	}

	// identity provider sign-in/sign-up
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
	app.Post("/logout", controllers.HandleLogout)

	// provider webhook endpoint; raw body, no rate limiting
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

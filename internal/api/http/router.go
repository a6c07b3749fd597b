package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flamecloud/flamecloud-api/internal/api/http/handlers"
	"github.com/flamecloud/flamecloud-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Chat           *handlers.ChatHandler
	Admin          *handlers.AdminHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public content reads.
	api.Get("/plans", cfg.Catalog.ListPaidPlans)
	api.Get("/free-plans", cfg.Catalog.ListFreePlans)
	api.Get("/locations", cfg.Catalog.ListLocations)
	api.Get("/partners", cfg.Catalog.ListPartners)
	api.Get("/settings", cfg.Catalog.ListSettings)
	api.Get("/about", cfg.Catalog.ListAbout)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	profile := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireUser())
	profile.Get("/me", cfg.Auth.Me)
	profile.Put("/me", cfg.Auth.UpdateProfile)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireUser())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)

	chat := api.Group("/chat", cfg.AuthMiddleware.Handle, auth.RequireUser())
	chat.Post("/send", cfg.Chat.SendMessage)
	chat.Get("/messages/:otherUserId", cfg.Chat.LoadConversation)
	chat.Get("/unread", cfg.Chat.UnreadCount)
	chat.Get("/users", auth.RequireAdmin(), cfg.Chat.ListPeers)

	claims := api.Group("/free-plans", cfg.AuthMiddleware.Handle, auth.RequireUser())
	claims.Post("/claim", cfg.Catalog.ClaimFreePlan)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/tickets", cfg.Tickets.ListAllTickets)
	admin.Put("/tickets/:id", cfg.Tickets.UpdateTicket)

	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Put("/users/:id", cfg.Admin.UpdateUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/overview", cfg.Admin.Overview)
	admin.Get("/metrics", cfg.Admin.Metrics)

	admin.Get("/plans", cfg.Catalog.ListAllPaidPlans)
	admin.Post("/plans", cfg.Catalog.CreatePaidPlan)
	admin.Put("/plans/:id", cfg.Catalog.UpdatePaidPlan)
	admin.Delete("/plans/:id", cfg.Catalog.DeletePaidPlan)

	admin.Post("/free-plans", cfg.Catalog.CreateFreePlan)
	admin.Put("/free-plans/:id", cfg.Catalog.UpdateFreePlan)
	admin.Delete("/free-plans/:id", cfg.Catalog.DeleteFreePlan)

	admin.Post("/locations", cfg.Catalog.CreateLocation)
	admin.Put("/locations/:id", cfg.Catalog.UpdateLocation)
	admin.Delete("/locations/:id", cfg.Catalog.DeleteLocation)

	admin.Post("/partners", cfg.Catalog.CreatePartner)
	admin.Put("/partners/:id", cfg.Catalog.UpdatePartner)
	admin.Delete("/partners/:id", cfg.Catalog.DeletePartner)

	admin.Put("/settings", cfg.Catalog.SaveSetting)

	admin.Post("/about", cfg.Catalog.CreateAbout)
	admin.Put("/about/:id", cfg.Catalog.UpdateAbout)
	admin.Delete("/about/:id", cfg.Catalog.DeleteAbout)
}

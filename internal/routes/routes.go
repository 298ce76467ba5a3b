package routes

import (
	"time"

	"github.com/Giridhar-07/civitrack-app/internal/config"
	"github.com/Giridhar-07/civitrack-app/internal/handlers"
	"github.com/Giridhar-07/civitrack-app/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	issueHandler *handlers.IssueHandler,
	flagHandler *handlers.FlagHandler,
	requestHandler *handlers.StatusRequestHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit bucket
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/auth/me", jwt, authHandler.Me)
	api.Put("/auth/me", jwt, authHandler.UpdateProfile)
	api.Put("/auth/password", jwt, authHandler.ChangePassword)

	// Issues — reads are public, mutations require a principal
	api.Get("/issues", issueHandler.List)
	api.Get("/issues/nearby", issueHandler.Nearby)
	api.Get("/issues/mine", jwt, issueHandler.ListMine)
	api.Get("/issues/:id", issueHandler.Get)
	api.Post("/issues", jwt, issueHandler.Create)
	api.Put("/issues/:id", jwt, issueHandler.Update)
	api.Put("/issues/:id/status", jwt, issueHandler.ChangeStatus)
	api.Delete("/issues/:id", jwt, issueHandler.Delete)

	// Abuse flags and status-change requests
	api.Post("/issues/:id/flag", jwt, flagHandler.Create)
	api.Post("/issues/:id/status-requests", jwt, requestHandler.Create)

	// Admin moderation panel
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/flags", flagHandler.ListQueue)
	admin.Get("/issues/:id/flags", flagHandler.ListForIssue)
	admin.Put("/flags/:id/resolve", flagHandler.Resolve)
	admin.Get("/status-requests", requestHandler.List)
	admin.Put("/status-requests/:id", requestHandler.Review)
}

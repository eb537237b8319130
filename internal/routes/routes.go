package routes

import (
	"time"

	"github.com/cradlelog/cradle-backend/internal/config"
	"github.com/cradlelog/cradle-backend/internal/handlers"
	"github.com/cradlelog/cradle-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	feedingHandler *handlers.FeedingHandler,
	sleepHandler *handlers.SleepHandler,
	vaccineHandler *handlers.VaccineHandler,
	babyHandler *handlers.BabyHandler,
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

	// Auth — public, with a stricter rate limit: 10 req/min per IP
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
	auth.Get("/verify/:token", authHandler.VerifyEmail)
	auth.Post("/verify/resend", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Protected account routes (JWT required)
	guard := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", guard, authHandler.Logout)
	api.Delete("/auth/account", guard, authHandler.DeleteAccount)

	// Record routes — everything below requires a session
	api.Post("/feedings", guard, feedingHandler.Create)
	api.Get("/feedings", guard, feedingHandler.List)
	api.Delete("/feedings/:id", guard, feedingHandler.Delete)

	api.Post("/sleeps", guard, sleepHandler.Create)
	api.Get("/sleeps", guard, sleepHandler.List)
	api.Patch("/sleeps/:id", guard, sleepHandler.Close)
	api.Delete("/sleeps/:id", guard, sleepHandler.Delete)

	api.Post("/vaccines", guard, vaccineHandler.Create)
	api.Get("/vaccines", guard, vaccineHandler.List)
	api.Delete("/vaccines/:id", guard, vaccineHandler.Delete)

	api.Post("/babies", guard, babyHandler.Create)
	api.Get("/babies", guard, babyHandler.List)
}

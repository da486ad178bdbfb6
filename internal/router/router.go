package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/config"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/handler"
	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to the API
// surface. Currently it exposes only a health check for load balancers
// and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the complaint API onto the Echo instance. Public
// listings are served through the Redis response cache when a client is
// available; everything mutating or user-scoped sits behind the JWT
// auth gate. The rate limiter applies to the whole surface. A nil
// Redis client disables both cache and limiter without changing the
// routes.
func RegisterAPI(
	e *echo.Echo,
	cfg config.Config,
	users *handler.UserHandler,
	categories *handler.CategoryHandler,
	complaints *handler.ComplaintHandler,
	export *handler.ExportHandler,
	upload *handler.UploadHandler,
	rdb *redis.Client,
) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	auth := middleware.JWTAuth(cfg.JWTSecret)

	// Uploaded photos are served statically under /uploads.
	e.Static("/uploads", cfg.UploadDir)
	e.POST("/upload-image", upload.Upload)

	// Categories: listing is public, mutations require a token.
	e.GET("/categories", categories.List, cache)
	e.POST("/categories", categories.Create, auth)
	e.GET("/categories/:id", categories.Get, auth)
	e.PATCH("/categories/:id", categories.Update, auth)
	e.DELETE("/categories/:id", categories.Delete, auth)

	// Complaints. The static segments (/my, /category) must be
	// registered alongside /:id; Echo prefers static matches.
	e.POST("/complaints", complaints.Create, auth)
	e.GET("/complaints", complaints.List, auth)
	e.GET("/complaints/my", complaints.ListMine, auth)
	e.GET("/complaints/category/:category_id", complaints.ListByCategory, cache)
	e.GET("/complaints/:id", complaints.Get, auth)
	e.PATCH("/complaints/:id", complaints.Update, auth)
	e.DELETE("/complaints/:id", complaints.Delete, auth)

	// Filtered CSV export.
	e.GET("/reports/export", export.Export, auth)

	// Users and sessions.
	e.POST("/users/register", users.Register)
	e.POST("/users/login", users.Login)
	e.GET("/auth/verify", users.Verify, auth)
	e.GET("/users", users.List, auth)
	e.PUT("/users/:id", users.Update, auth)
	e.DELETE("/users/:id", users.Delete, auth)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reading-service/internal/api/http/handlers"
	"github.com/spec-kit/reading-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Books          *handlers.BooksHandler
	Shelves        *handlers.ShelvesHandler
	Clubs          *handlers.ClubsHandler
	Points         *handlers.PointsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	app.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	app.Get("/points", cfg.AuthMiddleware.Handle, cfg.Points.List)

	books := app.Group("/books")
	books.Get("/", cfg.Books.List)
	books.Get("/:slug", cfg.Books.Get)
	books.Post("/", cfg.AuthMiddleware.Handle, cfg.Books.Create)

	shelves := app.Group("/shelves", cfg.AuthMiddleware.Handle)
	shelves.Get("/", cfg.Shelves.List)
	shelves.Post("/", cfg.Shelves.Create)
	shelves.Get("/:id/items", cfg.Shelves.ListItems)
	shelves.Post("/:id/items", cfg.Shelves.AddItem)
	shelves.Patch("/:id/items/:bookID", cfg.Shelves.UpdateItem)

	clubs := app.Group("/clubs")
	clubs.Get("/", cfg.Clubs.List)
	clubs.Get("/:slug", cfg.Clubs.Get)
	clubs.Post("/", cfg.AuthMiddleware.Handle, cfg.Clubs.Create)
	clubs.Post("/:slug/join", cfg.AuthMiddleware.Handle, cfg.Clubs.Join)
	clubs.Post("/:slug/leave", cfg.AuthMiddleware.Handle, cfg.Clubs.Leave)
}

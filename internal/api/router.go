package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"faturaapi.com/internal/api/middleware"
	"faturaapi.com/internal/auth"
	"faturaapi.com/internal/config"
	"faturaapi.com/internal/domain"
)

// Router registers all routes
type Router struct {
	app   *fiber.App
	cfg   *config.Config
	db    *gorm.DB
	users domain.UserService
}

func NewRouter(app *fiber.App, cfg *config.Config, db *gorm.DB, users domain.UserService) *Router {
	return &Router{
		app:   app,
		cfg:   cfg,
		db:    db,
		users: users,
	}
}

func (r *Router) RegisterRoutes() {
	enforcer, err := auth.InitCasbin(r.db)
	if err != nil {
		log.Fatalf("Failed to initialize Casbin: %v", err)
	}

	handler := NewUserHandler(r.users)

	// Make sure an approved admin exists before the first request
	if err := r.users.EnsureAdmin(context.Background()); err != nil {
		log.Printf("Failed to ensure admin user: %v", err)
	}

	guard := middleware.CasbinMiddleware(enforcer, []byte(r.cfg.JWT.Secret))

	// Signup and login stay public; the guard is attached per route so the
	// shared /api/usuarios prefix does not pull them behind the middleware
	usuarios := r.app.Group("/api/usuarios")
	usuarios.Post("/signup", handler.Signup)
	usuarios.Post("/login", handler.Login)
	usuarios.Get("/me", guard, handler.GetMe)
	usuarios.Get("/", guard, handler.ListUsers)
}

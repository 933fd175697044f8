package domain

import (
	"context"

	"faturaapi.com/internal/model"
)

// UserService defines the registration and authentication operations
type UserService interface {
	// Register a new user from the raw signup fields
	SignUp(ctx context.Context, fields map[string]string) error
	// Verify credentials and return the authenticated user
	Authenticate(ctx context.Context, email, password string) (*model.Usuario, error)
	// Full login flow: authenticate, check approval status, issue a token
	Login(ctx context.Context, email, password string) (string, error)
	// Look up a user by email
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	// List all registered users (admin use)
	List(ctx context.Context) ([]model.Usuario, error)
	// Seed a default approved admin when the user table is empty
	EnsureAdmin(ctx context.Context) error
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"faturaapi.com/internal/auth"
	"faturaapi.com/internal/config"
	"faturaapi.com/internal/constants"
	"faturaapi.com/internal/domain"
	"faturaapi.com/internal/model"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *slog.Logger
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserServiceImpl {
	return &UserServiceImpl{
		db:        db,
		jwtSecret: []byte(cfg.JWT.Secret),
		tokenTTL:  time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		logger:    slog.Default().With("component", "user_service"),
	}
}

// SignUp registers a new user from the raw signup fields
func (s *UserServiceImpl) SignUp(ctx context.Context, fields map[string]string) error {
	s.logger.Info("signup requested", "email", fields["email"])

	// Key presence only, matching the signup contract
	for _, key := range constants.SignupRequiredFields {
		if _, ok := fields[key]; !ok {
			return domain.ErrInvalidInput
		}
	}

	var existing model.Usuario
	err := s.db.WithContext(ctx).Where("email = ?", fields["email"]).First(&existing).Error
	if err == nil {
		return domain.ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("signup lookup failed", "email", fields["email"], "error", err)
		return domain.NewInternalError("failed to check existing user", err)
	}

	hashed, err := auth.HashPassword(fields["password"])
	if err != nil {
		s.logger.Error("signup password hashing failed", "error", err)
		return domain.NewInternalError("failed to hash password", err)
	}

	user := model.Usuario{
		Nome:     fields["nome"],
		Telefone: fields["telefone"],
		Email:    fields["email"],
		Password: hashed,
		Status:   "false", // Awaiting administrator approval
		Role:     "user",
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		s.logger.Error("signup persistence failed", "email", user.Email, "error", err)
		return domain.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "email", user.Email, "id", user.ID)
	return nil
}

// Authenticate verifies credentials and returns the authenticated user.
// The user record is returned directly; nothing is kept on the service
// between calls.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*model.Usuario, error) {
	var user model.Usuario
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBadCredentials
		}
		s.logger.Error("credential lookup failed", "email", email, "error", err)
		return nil, domain.NewInternalError("failed to load user", err)
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrBadCredentials
	}

	return &user, nil
}

// Login runs the full flow: authenticate, check approval status, issue a token.
// Internal failures collapse into bad credentials so the response does not
// reveal which step failed.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, domain.ErrBadCredentials) {
			s.logger.Error("authentication failed unexpectedly", "email", email, "error", err)
		}
		return "", domain.ErrBadCredentials
	}

	if !strings.EqualFold(user.Status, "true") {
		return "", domain.ErrNotApproved
	}

	token, err := auth.GenerateToken(user.Email, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error("token issuance failed", "email", user.Email, "error", err)
		return "", domain.ErrBadCredentials
	}

	s.logger.Info("user logged in", "email", user.Email, "role", user.Role)
	return token, nil
}

// FindByEmail looks up a user by email
func (s *UserServiceImpl) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var user model.Usuario
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewInternalError("failed to load user", err)
	}
	return &user, nil
}

// List returns all registered users
func (s *UserServiceImpl) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, domain.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// EnsureAdmin seeds a default approved admin when the user table is empty
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Usuario{}).Count(&count).Error; err != nil {
		return domain.NewInternalError("failed to count users", err)
	}
	if count > 0 {
		return nil
	}

	s.logger.Info("no users found, creating default admin user")
	hashed, err := auth.HashPassword("admin123")
	if err != nil {
		return domain.NewInternalError("failed to hash admin password", err)
	}

	admin := model.Usuario{
		Nome:     "Administrador",
		Telefone: "0000000000",
		Email:    "admin@faturaapi.com",
		Password: hashed,
		Status:   "true",
		Role:     "admin",
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return domain.NewInternalError("failed to create admin user", err)
	}

	s.logger.Info("created default admin user", "email", admin.Email)
	return nil
}

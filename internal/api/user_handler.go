package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"faturaapi.com/internal/constants"
	"faturaapi.com/internal/domain"
)

type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user (status "false" until the administrator approves)
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	// The contract is key presence on the JSON object, so the body is
	// parsed as a raw field map rather than a typed request
	fields := map[string]string{}
	if err := c.BodyParser(&fields); err != nil {
		return SendMessage(c, fiber.StatusBadRequest, constants.MsgInvalidData)
	}

	err := h.users.SignUp(c.UserContext(), fields)
	switch {
	case err == nil:
		return SendMessage(c, fiber.StatusCreated, constants.MsgSignupSuccess)
	case errors.Is(err, domain.ErrInvalidInput):
		return SendMessage(c, fiber.StatusBadRequest, constants.MsgInvalidData)
	case errors.Is(err, domain.ErrAlreadyExists):
		return SendMessage(c, fiber.StatusBadRequest, constants.MsgUserExists)
	default:
		return SendMessage(c, fiber.StatusInternalServerError, constants.MsgInternalError)
	}
}

// Login authenticates a user and returns a JWT
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"mensagem": constants.MsgBadCredentials})
	}

	token, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"token": token})
	case errors.Is(err, domain.ErrNotApproved):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"mensagem": constants.MsgNotApproved})
	default:
		// Bad credentials and unexpected failures look the same on the wire
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"mensagem": constants.MsgBadCredentials})
	}
}

// GetMe returns the authenticated user's record
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.users.FindByEmail(c.UserContext(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
	}

	return c.JSON(user)
}

// ListUsers returns all registered users (admin only, enforced by Casbin)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.JSON(users)
}

package api

import "github.com/gofiber/fiber/v2"

// SendMessage writes the plain-text "Mensagem:" body the signup contract uses
func SendMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).SendString("Mensagem: " + message)
}

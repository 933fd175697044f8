package model

import "gorm.io/gorm"

// Usuario represents a registered user
type Usuario struct {
	gorm.Model
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"` // Login identifier, unique
	Password string `gorm:"not null" json:"-"`                 // Stored as bcrypt hash, ignored in JSON response
	Status   string `json:"status"`                            // "true" once the administrator approved access
	Role     string `json:"role"`                              // Authorization claim embedded in issued tokens
}

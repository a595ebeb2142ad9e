package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. Accounts live only in process memory.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user-curated identity attached to a wallet address.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Address   string    `json:"address" db:"address"`
	Avatar    string    `json:"avatar" db:"avatar"`
	Username  string    `json:"username" db:"username"`
	Bio       string    `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

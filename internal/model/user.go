package model

import "time"

// User is a household account. There are no role tiers: every
// authenticated user manages the whole catalog.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

package models

import "time"

// User is an identity holder. PasswordHash guards the login flow;
// VaultKeyHash only verifies a submitted vault key and is set once at
// signup — the raw vault key is never stored.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	VaultKeyHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

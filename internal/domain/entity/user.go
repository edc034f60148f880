package entity

import "time"

// User is the aggregate root for the identity store.
// PasswordHash holds a bcrypt hash; CIN and RIB are the login pair.
// Email and CIN are unique at the storage layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CIN          string // national identity card number, 8 digits
	RIB          string // bank account identifier, exactly 20 digits
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

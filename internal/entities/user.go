package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // Never leaves the service layer
	CreatedAt    time.Time
}

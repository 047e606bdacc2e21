package entities

import "time"

// Category is a user-owned label for transactions. Names are unique per user.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

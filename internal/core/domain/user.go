package domain

import "time"

type User struct {
	ID        UserID
	Username  string
	Email     string
	CreatedAt time.Time
}

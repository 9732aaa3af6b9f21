package domain

import "time"

// Preference is one flat key/value setting scoped to a user.
type Preference struct {
	UserID    UserID    `json:"user_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

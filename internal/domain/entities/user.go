package entities

import "time"

// User is a tracker user identified by their Telegram user ID.
type User struct {
	ID               int64
	ChatID           int64
	CodeforcesHandle string // empty until the user connects a handle
	CreatedAt        time.Time
}

func NewUser(id, chatID int64) *User {
	return &User{
		ID:        id,
		ChatID:    chatID,
		CreatedAt: time.Now(),
	}
}

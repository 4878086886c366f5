package users

import "time"

// User minimal punya salah satu dari email / tg_id.
// User bot-only gak punya password.
type User struct {
	ID             int64     `json:"id"`
	Email          *string   `json:"email"`
	TgID           *string   `json:"tg_id"`
	HashedPassword *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

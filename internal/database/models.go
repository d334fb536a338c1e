package database

import "time"

// Subscription is the single chat that receives reminders. Only the chat is
// stored; reminder state itself lives in memory.
type Subscription struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

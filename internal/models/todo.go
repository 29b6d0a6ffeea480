package models

import "time"

// TodoItem is a single to-do entry owned by a user. All four text fields are
// free text and may be empty.
type TodoItem struct {
	ID        int64     `json:"id"`
	Time      string    `json:"time"`
	Priority  string    `json:"priority"`
	Task      string    `json:"task"`
	Location  string    `json:"location"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

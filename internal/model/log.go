package model

import "time"

// LogEntry records an activity event shown on the dashboard feed.
type LogEntry struct {
	ID        int64     `json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

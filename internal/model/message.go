package model

import "time"

// Message is a single entry in an item's coordination thread. Content is
// immutable after creation; only the read flag ever changes, and only
// from false to true.
type Message struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"itemId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

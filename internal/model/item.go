package model

import "time"

// Item represents a single lost or found posting.
type Item struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"ownerId"`
	ClaimantID  *string   `json:"claimantId,omitempty"`
	ImageMime   string    `json:"imageMime,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Item types.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// ValidItemType checks whether t is a known posting type.
func ValidItemType(t string) bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

package client

import (
	"context"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
)

type sendMessageRequest struct {
	ItemID     string `json:"itemId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// SendMessage appends a message to an item's thread. The sender is the
// authenticated user.
func (c *Client) SendMessage(ctx context.Context, itemID, receiverID, content string) (*model.Message, error) {
	req := sendMessageRequest{ItemID: itemID, ReceiverID: receiverID, Content: content}
	var msg model.Message
	if err := c.do(ctx, http.MethodPost, c.endpoint("messages"), req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ItemMessages returns an item's thread, oldest first. The thread is
// only visible to the owner, the claimant, and existing participants.
func (c *Client) ItemMessages(ctx context.Context, itemID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, http.MethodGet, c.endpoint("messages", "item", itemID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UserMessages returns all messages involving userID, newest first.
// Only the user themselves may call this.
func (c *Client) UserMessages(ctx context.Context, userID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, http.MethodGet, c.endpoint("messages", "user", userID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadMessages returns userID's unread incoming messages, newest first.
func (c *Client) UnreadMessages(ctx context.Context, userID string) ([]model.Message, error) {
	var messages []model.Message
	if err := c.do(ctx, http.MethodGet, c.endpoint("messages", "user", userID, "unread"), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead marks a message read. Only the receiver may call this;
// repeating the call is harmless.
func (c *Client) MarkRead(ctx context.Context, messageID string) (*model.Message, error) {
	var msg model.Message
	if err := c.do(ctx, http.MethodPut, c.endpoint("messages", messageID, "read"), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

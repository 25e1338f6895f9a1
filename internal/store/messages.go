package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

const messageColumns = `id, item_id, sender_id, receiver_id, content, read, created_at`

// CreateMessage appends a message to an item's thread. Messages start
// unread and their content never changes afterwards.
func CreateMessage(ctx context.Context, db *sql.DB, itemID, senderID, receiverID, content string) (*model.Message, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO messages (id, item_id, sender_id, receiver_id, content) VALUES (?, ?, ?, ?, ?)`,
		id, itemID, senderID, receiverID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return GetMessage(ctx, db, id)
}

// GetMessage returns a message by ID, or nil if it does not exist.
func GetMessage(ctx context.Context, db *sql.DB, id string) (*model.Message, error) {
	m := &model.Message{}
	err := db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.ItemID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// ListItemMessages returns an item's full thread, oldest first.
// rowid breaks ties between messages created within the same second.
func ListItemMessages(ctx context.Context, db *sql.DB, itemID string) ([]model.Message, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE item_id = ?
		 ORDER BY created_at ASC, rowid ASC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListUserMessages returns all messages where the user is sender or
// receiver, across all items, newest first.
func ListUserMessages(ctx context.Context, db *sql.DB, userID string) ([]model.Message, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE sender_id = ? OR receiver_id = ?
		 ORDER BY created_at DESC, rowid DESC`, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListUnreadMessages returns the user's unread incoming messages, newest first.
func ListUnreadMessages(ctx context.Context, db *sql.DB, userID string) ([]model.Message, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE receiver_id = ? AND read = 0
		 ORDER BY created_at DESC, rowid DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing unread messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MarkMessageRead flips the read flag to true. Marking an already-read
// message is a no-op success, not an error.
func MarkMessageRead(ctx context.Context, db *sql.DB, id string) (*model.Message, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE messages SET read = 1 WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("marking message read: %w", err)
	}

	m, err := GetMessage(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

// IsThreadParticipant reports whether the user appears in an item's
// thread as sender or receiver.
func IsThreadParticipant(ctx context.Context, db *sql.DB, itemID, userID string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE item_id = ? AND (sender_id = ? OR receiver_id = ?)`,
		itemID, userID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking thread participation: %w", err)
	}
	return count > 0, nil
}

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ItemID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

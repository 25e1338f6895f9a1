package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

// DefaultPageSize bounds item listings when no size is given.
const DefaultPageSize = 10

// ListQuery filters and paginates item listings. Zero-valued fields are
// left out of the generated WHERE clause entirely; the authority treats
// an omitted filter differently from an empty one.
type ListQuery struct {
	Search          string
	Page            int
	Size            int
	Type            string
	Status          model.Status
	UserID          string
	IncludeResolved bool
}

const itemColumns = `id, type, title, description, location, status, owner_id, claimant_id, image_mime, created_at, updated_at`

// CreateItem creates a new posting. Status always starts open regardless
// of what the caller wanted; lifecycle changes go through the dedicated
// transition functions.
func CreateItem(ctx context.Context, db *sql.DB, itemType, title, description, location, ownerID string) (*model.Item, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, type, title, description, location, owner_id) VALUES (?, ?, ?, ?, ?, ?)`,
		id, itemType, title, description, location, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns a filtered, paginated page of items, newest first.
// Resolved items are excluded unless the query asks for them, either via
// IncludeResolved or an explicit resolved status filter.
func ListItems(ctx context.Context, db *sql.DB, q ListQuery) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query += ` AND (title LIKE ? OR description LIKE ? OR location LIKE ?)`
		args = append(args, pattern, pattern, pattern)
	}
	if q.Type != "" {
		query += ` AND type = ?`
		args = append(args, q.Type)
	}
	if q.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(q.Status))
	}
	if q.UserID != "" {
		query += ` AND owner_id = ?`
		args = append(args, q.UserID)
	}
	if !q.IncludeResolved && q.Status != model.StatusResolved {
		query += ` AND status != ?`
		args = append(args, string(model.StatusResolved))
	}

	size := q.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	page := q.Page
	if page < 0 {
		page = 0
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`
	args = append(args, size, page*size)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's mutable fields. Status, owner, and
// claimant are deliberately not touched here.
func UpdateItem(ctx context.Context, db *sql.DB, id, title, description, location string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, description, location, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem permanently removes an item. Its message thread goes with it
// via the cascading foreign key.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimItem requests the open -> claimed transition for userID. The
// conditional UPDATE is the serialization point for the single-claimant
// guarantee: of two concurrent claims, only one matches status = 'open'.
func ClaimItem(ctx context.Context, db *sql.DB, itemID, userID string) (*model.Item, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, claimant_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ? AND owner_id != ?`,
		string(model.StatusClaimed), userID, itemID, string(model.StatusOpen), userID,
	)
	if err != nil {
		return nil, fmt.Errorf("claiming item: %w", err)
	}
	return lifecycleResult(ctx, db, itemID, res, model.EventClaim, userID)
}

// UnclaimItem requests the claimed -> open transition.
func UnclaimItem(ctx context.Context, db *sql.DB, itemID string) (*model.Item, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, claimant_id = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		string(model.StatusOpen), itemID, string(model.StatusClaimed),
	)
	if err != nil {
		return nil, fmt.Errorf("unclaiming item: %w", err)
	}
	return lifecycleResult(ctx, db, itemID, res, model.EventUnclaim, "")
}

// ResolveItem requests the transition to resolved from open or claimed,
// clearing any claimant.
func ResolveItem(ctx context.Context, db *sql.DB, itemID string) (*model.Item, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, claimant_id = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status IN (?, ?)`,
		string(model.StatusResolved), itemID, string(model.StatusOpen), string(model.StatusClaimed),
	)
	if err != nil {
		return nil, fmt.Errorf("resolving item: %w", err)
	}
	return lifecycleResult(ctx, db, itemID, res, model.EventResolve, "")
}

// UnresolveItem reopens a resolved item, clearing any stale claimant.
func UnresolveItem(ctx context.Context, db *sql.DB, itemID string) (*model.Item, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, claimant_id = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		string(model.StatusOpen), itemID, string(model.StatusResolved),
	)
	if err != nil {
		return nil, fmt.Errorf("unresolving item: %w", err)
	}
	return lifecycleResult(ctx, db, itemID, res, model.EventUnresolve, "")
}

// lifecycleResult interprets a conditional lifecycle UPDATE. When no row
// matched, it distinguishes a missing item from a guard violation by
// replaying the transition against the observed state, which also yields
// the precise rejection reason.
func lifecycleResult(ctx context.Context, db *sql.DB, itemID string, res sql.Result, event model.Event, actorID string) (*model.Item, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking transition result: %w", err)
	}

	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if n == 0 {
		if err := item.Apply(event, actorID); err != nil {
			return nil, err
		}
		// The state changed between the UPDATE and the re-read; report
		// the transition as rejected rather than guessing.
		return nil, model.ErrInvalidTransition
	}

	return item, nil
}

// SetItemImage stores an item's photo.
func SetItemImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemImage returns an item's photo data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var description, location, claimantID, imageMime sql.NullString
	err := row.Scan(&item.ID, &item.Type, &item.Title, &description, &location,
		&item.Status, &item.OwnerID, &claimantID, &imageMime,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Description = description.String
	item.Location = location.String
	item.ImageMime = imageMime.String
	if claimantID.Valid {
		item.ClaimantID = &claimantID.String
	}
	return item, nil
}

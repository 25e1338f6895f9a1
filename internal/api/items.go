package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item CRUD and lifecycle endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// updateItemRequest covers the mutable fields. Lifecycle fields are
// declared as pointers purely so their presence can be detected and
// rejected: generic update must never smuggle a status change.
type updateItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Status      *string `json:"status"`
	OwnerID     *string `json:"ownerId"`
	ClaimantID  *string `json:"claimantId"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := store.ListQuery{
		Search: params.Get("search"),
		Type:   params.Get("type"),
		UserID: params.Get("userId"),
	}

	if v := params.Get("status"); v != "" {
		if !model.ValidStatus(model.Status(v)) {
			jsonError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		q.Status = model.Status(v)
	}
	if v := params.Get("type"); v != "" && !model.ValidItemType(v) {
		jsonError(w, http.StatusBadRequest, "invalid type filter")
		return
	}
	if v := params.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			jsonError(w, http.StatusBadRequest, "invalid page")
			return
		}
		q.Page = page
	}
	if v := params.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			jsonError(w, http.StatusBadRequest, "invalid size")
			return
		}
		q.Size = size
	}
	// Resolved items are hidden unless the caller explicitly opts in; an
	// omitted parameter means "exclude", not "include".
	if params.Get("excludeResolved") == "false" {
		q.IncludeResolved = true
	}

	items, err := store.ListItems(r.Context(), h.DB, q)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if !model.ValidItemType(req.Type) {
		jsonError(w, http.StatusBadRequest, "type must be 'lost' or 'found'")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.Type, req.Title, req.Description, req.Location, claims.UserID)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	logActivity(r, h.DB, claims.UserID, "posted a "+item.Type+" item: "+item.Title)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. Only mutable fields may change;
// lifecycle transitions go through the dedicated endpoints.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status != nil || req.OwnerID != nil || req.ClaimantID != nil {
		jsonError(w, http.StatusBadRequest, "status, ownerId, and claimantId cannot be changed here; use the lifecycle endpoints")
		return
	}
	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.OwnerID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the owner can edit an item")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, req.Title, req.Description, req.Location); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	updated, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.OwnerID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the owner can delete an item")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("item deleted", "item", id, "user", claims.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Claim handles PUT /api/items/{id}/claim?userId=...
func (h *ItemsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		jsonError(w, http.StatusBadRequest, "userId required")
		return
	}
	if userID != claims.UserID {
		jsonError(w, http.StatusForbidden, "cannot claim on behalf of another user")
		return
	}

	item, err := store.ClaimItem(r.Context(), h.DB, id, userID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	logActivity(r, h.DB, claims.UserID, "claimed item: "+item.Title)
	jsonResponse(w, http.StatusOK, item)
}

// Unclaim handles PUT /api/items/{id}/unclaim.
func (h *ItemsHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	claimant := item.ClaimantID != nil && *item.ClaimantID == claims.UserID
	if !claimant && item.OwnerID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the owner or claimant can release a claim")
		return
	}

	updated, err := store.UnclaimItem(r.Context(), h.DB, id)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Resolve handles PUT /api/items/{id}/resolve.
func (h *ItemsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	if !h.requireOwner(w, r, id) {
		return
	}

	item, err := store.ResolveItem(r.Context(), h.DB, id)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	logActivity(r, h.DB, claims.UserID, "resolved item: "+item.Title)
	jsonResponse(w, http.StatusOK, item)
}

// Unresolve handles PUT /api/items/{id}/unresolve.
func (h *ItemsHandler) Unresolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.requireOwner(w, r, id) {
		return
	}

	item, err := store.UnresolveItem(r.Context(), h.DB, id)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.requireOwner(w, r, id) {
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// requireOwner fetches the item and verifies the caller owns it, writing
// the error response itself when the check fails.
func (h *ItemsHandler) requireOwner(w http.ResponseWriter, r *http.Request, id string) bool {
	claims := GetClaims(r.Context())

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return false
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return false
	}
	if item.OwnerID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the owner can do this")
		return false
	}
	return true
}

// writeLifecycleError maps store lifecycle failures onto HTTP statuses:
// missing items are 404, rejected transitions are 409, everything else 500.
func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, model.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("lifecycle operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// logActivity records a dashboard feed entry; failures are logged and
// otherwise ignored since the feed is best-effort.
func logActivity(r *http.Request, db *sql.DB, userID, content string) {
	if _, err := store.CreateLog(r.Context(), db, &userID, content); err != nil {
		slog.Warn("failed to record activity", "error", err)
	}
}
